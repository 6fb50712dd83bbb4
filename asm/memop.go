package asm

import (
	"fmt"
	"strings"
)

// MemOperandReg parses "[reg]" or "[reg+imm]"/"[reg-imm]" and returns the
// register index and signed offset.
func MemOperandReg(text string) (reg int, offset int32, err error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return 0, 0, fmt.Errorf("invalid syntax for memory operand '%s'", text)
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])

	if !strings.ContainsAny(inner, "+-") {
		reg, err = ParseRegister(inner)
		return reg, 0, err
	}

	if strings.Count(inner, "+")+strings.Count(inner, "-") > 1 {
		return 0, 0, fmt.Errorf("too many signs: '%s'", inner)
	}

	pos, sign := strings.IndexByte(inner, '+'), int32(1)
	if pos < 0 {
		pos, sign = strings.IndexByte(inner, '-'), -1
	}

	reg, err = ParseRegister(strings.TrimSpace(inner[:pos]))
	if err != nil {
		return 0, 0, err
	}
	v, err := ParseIntegerLiteral(strings.TrimSpace(inner[pos+1:]))
	if err != nil {
		return 0, 0, err
	}
	off := sign * int32(v)
	if off < -(1<<15) || off >= (1<<15) {
		return 0, 0, fmt.Errorf("offset is too large: '%s'", inner[pos:])
	}
	return reg, off, nil
}

// MemOperandLabel tries to parse text as "[label]" or "[label+/-imm]". ok is
// false when the bracketed content is not a valid label (e.g. it is a
// register), in which case the caller should fall back to MemOperandReg.
func MemOperandLabel(text string) (name string, offset int32, ok bool, err error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return "", 0, false, fmt.Errorf("invalid syntax for memory operand '%s'", text)
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])

	if !strings.ContainsAny(inner, "+-") {
		label, lerr := ParseLabel(inner, true)
		if lerr != nil || label == "" {
			return "", 0, false, nil
		}
		return label, 0, true, nil
	}

	if strings.Count(inner, "+")+strings.Count(inner, "-") > 1 {
		return "", 0, false, fmt.Errorf("too many signs: '%s'", inner)
	}

	pos, sign := strings.IndexByte(inner, '+'), int32(1)
	if pos < 0 {
		pos, sign = strings.IndexByte(inner, '-'), -1
	}

	name = strings.TrimSpace(inner[:pos])
	label, lerr := ParseLabel(name, true)
	if lerr != nil || label == "" {
		return "", 0, false, nil
	}
	v, err := ParseIntegerLiteral(strings.TrimSpace(inner[pos+1:]))
	if err != nil {
		return "", 0, false, err
	}
	off := sign * int32(v)
	if off < -(1<<15) || off >= (1<<15) {
		return "", 0, false, fmt.Errorf("offset is too large: '%s'", inner[pos:])
	}
	return label, off, true, nil
}
