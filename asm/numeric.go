// Package asm implements the SCAT assembler: numeric/operand parsing,
// base-instruction encoding, pseudo-instruction expansion, two-pass label
// resolution, and the .exe/.lst output formats.
package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// reg names and aliases, mirroring the original assembler's reg_names/alias_names.
var (
	regNames = [...]string{
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	}
	regAliases = map[string]int{
		"zero": 0,
		"sp":   13,
		"lr":   14,
		"pc":   15,
	}
)

// ParseRegister interprets text as a register index: zero/r0 -> 0, sp -> 13, etc.
func ParseRegister(text string) (int, error) {
	if n, ok := regAliases[text]; ok {
		return n, nil
	}
	for i, name := range regNames {
		if name == text {
			return i, nil
		}
	}
	return 0, fmt.Errorf("incorrect register name '%s'", text)
}

// IsRegisterToken reports whether text names a register or register alias.
func IsRegisterToken(text string) bool {
	_, err := ParseRegister(text)
	return err == nil
}

func isDigits(s string, alphabet string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}

// ParseIntegerLiteral parses a decimal/hex/binary integer literal, honoring
// a single leading '-' for decimal only. Mirrors asm.py's parse_integer_literal.
func ParseIntegerLiteral(text string) (int64, error) {
	if len(text) == 0 {
		return 0, fmt.Errorf("empty string not allowed here")
	}
	if strings.Contains(text, " ") {
		return 0, fmt.Errorf("no whitespace allowed in integer constant: '%s'", text)
	}
	if strings.Contains(text, "--") {
		return 0, fmt.Errorf("duplicate sign: '%s'", text)
	}
	if strings.Contains(text, "+") {
		return 0, fmt.Errorf("plus sign not allowed here: '%s'", text)
	}
	switch {
	case len(text) > 3 && text[:3] == "-0b":
		return 0, fmt.Errorf("sign not allowed in binary constant: '%s'", text)
	case len(text) > 3 && text[:3] == "-0x":
		return 0, fmt.Errorf("sign not allowed in hex constant: '%s'", text)
	case len(text) > 1 && text[0] == '-':
		v, err := ParseIntegerLiteral(text[1:])
		if err != nil {
			return 0, err
		}
		return -v, nil
	case len(text) > 2 && text[:2] == "0x" && isDigits(text[2:], "0123456789abcdefABCDEF"):
		v, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot understand integer constant: '%s'", text)
		}
		return v, nil
	case len(text) > 2 && text[:2] == "0b" && isDigits(text[2:], "01"):
		v, err := strconv.ParseInt(text[2:], 2, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot understand integer constant: '%s'", text)
		}
		return v, nil
	case isDigits(text, "0123456789"):
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot understand integer constant: '%s'", text)
		}
		return v, nil
	}
	return 0, fmt.Errorf("cannot understand integer constant: '%s'", text)
}

// IsHexOrBinLiteral reports whether text uses 0x/0b notation (as opposed to decimal).
func IsHexOrBinLiteral(text string) bool {
	return len(text) >= 2 && (text[:2] == "0x" || text[:2] == "0b")
}

// ParseJumpDistance recognizes "+12", "-4", etc; the distance must be a
// multiple of 4 and fit in signed 16 bits.
func ParseJumpDistance(text string) (int32, error) {
	if text == "" || (text[0] != '+' && text[0] != '-') {
		return 0, fmt.Errorf("jump offset must start with either '+' or '-'")
	}
	v, err := ParseIntegerLiteral(text[1:])
	if err != nil {
		return 0, err
	}
	if v%4 != 0 {
		return 0, fmt.Errorf("jump distance must be a multiple of 4")
	}
	if text[0] == '-' {
		v = -v
	}
	if v < -(1<<15) || v >= (1<<15) {
		return 0, fmt.Errorf("jump distance is too large")
	}
	return int32(v), nil
}

var labelNameRe = regexpMustCompileLabel()

// ParseLabel validates text as a legal label name: [A-Za-z_][A-Za-z0-9_]*,
// and not a mnemonic/register/alias. noerror suppresses the error (used by
// the memory-operand parser's best-effort disambiguation between "[r3]" and
// "[somelabel]").
func ParseLabel(text string, noerror bool) (string, error) {
	text = strings.TrimSpace(text)
	if !labelNameRe.MatchString(text) || isReservedWord(text) {
		if noerror {
			return "", nil
		}
		return "", fmt.Errorf("invalid label name: '%s'", text)
	}
	return text, nil
}

func isReservedWord(text string) bool {
	if IsMnemonic(text) || IsPseudoMnemonic(text) {
		return true
	}
	if IsRegisterToken(text) {
		return true
	}
	return false
}
