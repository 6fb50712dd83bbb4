package asm

import (
	"strings"
)

// Assemble runs both passes over source (one line per element, 0-indexed;
// line numbers in diagnostics are 1-based) and returns the built executable.
// file names the source for diagnostics only.
func Assemble(file string, source []string) (*Executable, error) {
	lines := make([]string, len(source)+1)
	copy(lines[1:], source)

	ex := NewExecutable(lines)

	for i, raw := range source {
		lineNum := i + 1
		stripped := strings.ToLower(stripComment(raw))
		if stripped == "" {
			continue
		}

		label, rest := splitLabel(stripped)
		if label != "" {
			if _, err := ParseLabel(label, false); err != nil {
				return nil, newError(file, lineNum, raw, "%s", err.Error())
			}
			if err := ex.AddLabel(label); err != nil {
				return nil, newError(file, lineNum, raw, "%s", err.Error())
			}
		}
		if rest == "" {
			continue
		}

		if err := assembleLine(ex, file, lineNum, raw, rest); err != nil {
			return nil, err
		}
	}

	if err := ex.ResolveAll(); err != nil {
		return nil, &Error{File: file, Msg: err.Error()}
	}
	return ex, nil
}

func assembleLine(ex *Executable, file string, lineNum int, raw, rest string) error {
	mnemonic, operands := splitFields(rest)

	switch mnemonic {
	case ".word":
		return assembleWordDirective(ex, file, lineNum, raw, operands)
	case ".space":
		return assembleSpaceDirective(ex, file, lineNum, raw, operands)
	case ".align":
		return assembleAlignDirective(ex, file, lineNum, raw, operands)
	}

	if IsMnemonic(mnemonic) {
		entry, err := assembleBase(mnemonic, operands)
		if err != nil {
			return newError(file, lineNum, raw, "%s", err.Error())
		}
		entry.LineNum = lineNum
		return ex.Add(entry)
	}

	if IsPseudoMnemonic(mnemonic) {
		entries, err := expandPseudo(mnemonic, operands)
		if err != nil {
			return newError(file, lineNum, raw, "%s", err.Error())
		}
		for i, e := range entries {
			e.LineNum = lineNum
			e.Pseudo = i > 0
			if err := ex.Add(e); err != nil {
				return newError(file, lineNum, raw, "%s", err.Error())
			}
		}
		return nil
	}

	return newError(file, lineNum, raw, "unknown instruction '%s'", mnemonic)
}

func assembleWordDirective(ex *Executable, file string, lineNum int, raw string, operands []string) error {
	if err := checkGenericArgs(".word", len(operands), 1); err != nil {
		return newError(file, lineNum, raw, "%s", err.Error())
	}
	entry := &Entry{LineNum: lineNum, IsRaw: true}
	if label, err := ParseLabel(operands[0], true); err == nil && label != "" {
		entry.Target = label
	} else {
		v, err := ParseIntegerLiteral(operands[0])
		if err != nil {
			return newError(file, lineNum, raw, "%s", err.Error())
		}
		entry.RawValue = uint32(v)
	}
	return ex.Add(entry)
}

// assembleSpaceDirective advances the cursor by size bytes with no emission,
// leaving a hollow gap in the executable rather than spamming it with zero
// words (asm.py's ".space" handling).
func assembleSpaceDirective(ex *Executable, file string, lineNum int, raw string, operands []string) error {
	if err := checkGenericArgs(".space", len(operands), 1); err != nil {
		return newError(file, lineNum, raw, "%s", err.Error())
	}
	n, err := ParseIntegerLiteral(operands[0])
	if err != nil {
		return newError(file, lineNum, raw, "%s", err.Error())
	}
	if n <= 0 {
		return newError(file, lineNum, raw, "incorrect size in '.space' directive: %d", n)
	}
	ex.CurAddr += uint32(n)
	return nil
}

// assembleAlignDirective advances the cursor one byte at a time until it is
// a multiple of n, with no emission.
func assembleAlignDirective(ex *Executable, file string, lineNum int, raw string, operands []string) error {
	if err := checkGenericArgs(".align", len(operands), 1); err != nil {
		return newError(file, lineNum, raw, "%s", err.Error())
	}
	n, err := ParseIntegerLiteral(operands[0])
	if err != nil {
		return newError(file, lineNum, raw, "%s", err.Error())
	}
	if n <= 0 {
		return newError(file, lineNum, raw, "incorrect argument in '.align' directive: %d", n)
	}
	for ex.CurAddr%uint32(n) != 0 {
		ex.CurAddr++
	}
	return nil
}

// StripExtension removes a trailing ".s" suffix, used to derive default
// .exe/.lst output paths from a source path.
func StripExtension(path string) string {
	return strings.TrimSuffix(path, ".s")
}
