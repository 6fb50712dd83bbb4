package asm

import "fmt"

// push/pop always expand to exactly these two instructions; objdump.go
// recognizes the literal encoded words to re-fold them back into push/pop.
const (
	pushSubi = 0x21dd0004 // subi sp, sp, 4
	popAddi  = 0x20dd0004 // addi sp, sp, 4
)

// parseBranchTarget accepts either a signed multiple-of-4 PC-relative
// distance ("+8", "-12") or a label name.
func parseBranchTarget(text string) (label string, dist int32, isLabel bool, err error) {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		dist, err = ParseJumpDistance(text)
		return "", dist, false, err
	}
	label, err = ParseLabel(text, false)
	return label, 0, true, err
}

// branchEntry builds the type-3 conditional branch for a pseudo-jump mnemonic,
// deferred against a label or resolved against a literal distance.
func branchEntry(op string, rs1, rs2 int, target string) (*Entry, error) {
	label, dist, isLabel, err := parseBranchTarget(target)
	if err != nil {
		return nil, err
	}
	if isLabel {
		return encodeType3ToLabel(op, rs1, rs2, label), nil
	}
	return encodeType3(op, rs1, rs2, dist), nil
}

// expandPseudo lowers one pseudo-instruction line into its constituent base
// instructions. operands are the comma-split, trimmed operand tokens.
func expandPseudo(mnemonic string, operands []string) ([]*Entry, error) {
	const zero = 0
	const pc = 15
	const sp = 13
	const lr = 14

	switch mnemonic {
	case "nop":
		if err := checkGenericArgs(mnemonic, len(operands), 0); err != nil {
			return nil, err
		}
		return one(encodeType2("addi", zero, zero, 0)), nil

	case "inc":
		rd, err := oneReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType2("addi", rd, rd, 1)), nil

	case "dec":
		rd, err := oneReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType2("subi", rd, rd, 1)), nil

	case "mov":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType2("addi", rd, rs, 0)), nil

	case "not":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType2("xori", rd, rs, -1)), nil

	case "neg":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType1("sub", rd, zero, rs)), nil

	case "seqz":
		// Bug-compatible: expands to "sltiu rd, rs, 0", which is always
		// false (nothing is less than 0 unsigned). See DESIGN.md open
		// question (ii).
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType2("sltiu", rd, rs, 0)), nil

	case "snez":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType1("sltu", rd, zero, rs)), nil

	case "sltz":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType1("slt", rd, rs, zero)), nil

	case "sgtz":
		rd, rs, err := twoReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return one(encodeType1("slt", rd, zero, rs)), nil

	case "bra":
		if err := checkGenericArgs(mnemonic, len(operands), 1); err != nil {
			return nil, err
		}
		// bra is unconditional: "addi pc, pc, dist"/label, not a branch.
		label, dist, isLabel, err := parseBranchTarget(operands[0])
		if err != nil {
			return nil, err
		}
		if isLabel {
			entry := encodeType2("addi", pc, pc, 0)
			entry.Target = label
			return one(entry), nil
		}
		return one(encodeType2("addi", pc, pc, dist)), nil

	case "beqz", "bnez", "blez", "bgez", "bltz", "bgtz":
		if err := checkGenericArgs(mnemonic, len(operands), 2); err != nil {
			return nil, err
		}
		rs, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		var op string
		var a, b int
		switch mnemonic {
		case "beqz":
			op, a, b = "beq", rs, zero
		case "bnez":
			op, a, b = "bne", rs, zero
		case "blez":
			op, a, b = "bge", zero, rs
		case "bgez":
			op, a, b = "bge", rs, zero
		case "bltz":
			op, a, b = "blt", rs, zero
		case "bgtz":
			op, a, b = "blt", zero, rs
		}
		e, err := branchEntry(op, a, b, operands[1])
		if err != nil {
			return nil, err
		}
		return one(e), nil

	case "bgt", "ble", "bgtu", "bleu":
		if err := checkGenericArgs(mnemonic, len(operands), 3); err != nil {
			return nil, err
		}
		ra, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		rb, err := ParseRegister(operands[1])
		if err != nil {
			return nil, err
		}
		var op string
		switch mnemonic {
		case "bgt":
			op = "blt"
		case "ble":
			op = "bge"
		case "bgtu":
			op = "bltu"
		case "bleu":
			op = "bgeu"
		}
		e, err := branchEntry(op, rb, ra, operands[2])
		if err != nil {
			return nil, err
		}
		return one(e), nil

	case "jmp":
		if err := checkGenericArgs(mnemonic, len(operands), 1); err != nil {
			return nil, err
		}
		return jalTo(zero, pc, operands[0])

	case "call":
		if err := checkGenericArgs(mnemonic, len(operands), 1); err != nil {
			return nil, err
		}
		return jalTo(lr, pc, operands[0])

	case "ret":
		if err := checkGenericArgs(mnemonic, len(operands), 0); err != nil {
			return nil, err
		}
		return jalTo(zero, lr, "+0")

	case "push":
		rd, err := oneReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return []*Entry{
			encodeType2("subi", sp, sp, 4),
			encodeType4("store", rd, sp, 0),
		}, nil

	case "pop":
		rd, err := oneReg(mnemonic, operands)
		if err != nil {
			return nil, err
		}
		return []*Entry{
			encodeType4("load", rd, sp, 0),
			encodeType2("addi", sp, sp, 4),
		}, nil

	case "leti":
		if err := checkGenericArgs(mnemonic, len(operands), 2); err != nil {
			return nil, err
		}
		rd, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		return expandLeti(rd, operands[1])
	}

	return nil, fmt.Errorf("unknown pseudo-instruction '%s'", mnemonic)
}

// jalTo builds a type-5 jump-and-link against either a label (which requires
// rs1 to be pc, per the base-register constraint below) or a literal
// +/-distance.
func jalTo(rd, rs1 int, target string) ([]*Entry, error) {
	label, dist, isLabel, err := parseBranchTarget(target)
	if err != nil {
		return nil, err
	}
	if isLabel {
		const pc = 15
		if rs1 != pc {
			return nil, fmt.Errorf("invalid base register 'r%d'. You should use r15", rs1)
		}
		return one(encodeType5ToLabel(rd, rs1, label)), nil
	}
	return one(encodeType5(rd, rs1, dist)), nil
}

func one(e *Entry) []*Entry { return []*Entry{e} }

func oneReg(mnemonic string, operands []string) (int, error) {
	if err := checkGenericArgs(mnemonic, len(operands), 1); err != nil {
		return 0, err
	}
	return ParseRegister(operands[0])
}

func twoReg(mnemonic string, operands []string) (int, int, error) {
	if err := checkGenericArgs(mnemonic, len(operands), 2); err != nil {
		return 0, 0, err
	}
	rd, err := ParseRegister(operands[0])
	if err != nil {
		return 0, 0, err
	}
	rs, err := ParseRegister(operands[1])
	if err != nil {
		return 0, 0, err
	}
	return rd, rs, nil
}

// expandLeti lowers "leti rd, value", checking these cases in order:
//  1. value names a label -> "addi rd, pc, label", deferred, which loads
//     the label's address.
//  2. value fits in a signed 16-bit immediate -> one addi.
//  3. value's low 16 bits are zero and its high half fits in a signed
//     16-bit immediate -> addi of the high half, then lsli 16.
//  4. otherwise the general wide case: addi of the high half, lsli 16, then
//     addi of the low half, compensating for sign-extension of bit 15 when
//     it is set.
//
// Hex and decimal literals are treated alike.
func expandLeti(rd int, operand string) ([]*Entry, error) {
	if label, err := ParseLabel(operand, true); err == nil && label != "" {
		const pc = 15
		e := encodeType2("addi", rd, pc, 0)
		e.Target = label
		return one(e), nil
	}

	v, err := ParseIntegerLiteral(operand)
	if err != nil {
		return nil, err
	}
	u := uint32(int32(v))

	// Case 2: fits directly as a signed 16-bit immediate.
	if v >= -(1<<15) && v < (1<<15) {
		return one(encodeType2("addi", rd, 0, int32(v))), nil
	}

	// Case 3: low 16 bits are zero, so a single left-shifted literal suffices.
	if u&0xFFFF == 0 {
		hi := int32(u >> 16)
		if hi >= -(1<<15) && hi < (1<<15) {
			return []*Entry{
				encodeType2("addi", rd, 0, hi),
				encodeType2("lsli", rd, rd, 16),
			}, nil
		}
	}

	// General wide case: load the high 16 bits, shift left 16, add in the low
	// 16 bits. Because addi's immediate is sign-extended, when bit 15 of the
	// low half is set we must pre-add 1 to the high half to compensate.
	lo := u & 0xFFFF
	hi := u >> 16
	if lo&0x8000 != 0 {
		hi++
	}
	hiImm := int32(int16(hi))
	return []*Entry{
		encodeType2("addi", rd, 0, hiImm),
		encodeType2("lsli", rd, rd, 16),
		encodeType2("addi", rd, rd, int32(int16(lo))),
	}, nil
}
