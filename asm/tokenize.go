package asm

import "strings"

// stripComment removes a trailing ';' comment and surrounding whitespace.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// splitLabel splits a leading "name:" off the front of a preprocessed line,
// returning the label (possibly empty) and the remainder.
func splitLabel(line string) (label string, rest string) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", line
	}
	candidate := strings.TrimSpace(line[:i])
	if candidate == "" || strings.ContainsAny(candidate, " \t[]+-,") {
		return "", line
	}
	return candidate, strings.TrimSpace(line[i+1:])
}

// splitFields splits "mnemonic op1, op2, op3" into the mnemonic and its
// comma-separated operand list. Bracketed memory operands like
// "[sp+4]" are kept whole.
func splitFields(line string) (mnemonic string, operands []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	mnemonic = fields[0]
	rest := strings.TrimSpace(line[len(mnemonic):])
	if rest == "" {
		return mnemonic, nil
	}
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			operands = append(operands, part)
		}
	}
	return mnemonic, operands
}
