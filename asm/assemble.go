package asm

import "fmt"

// assembleBase lowers one base (non-pseudo) instruction mnemonic plus its
// operand tokens into a single Entry.
func assembleBase(mnemonic string, operands []string) (*Entry, error) {
	switch {
	case indexOf(Type1[:], mnemonic) >= 0:
		if err := checkGenericArgs(mnemonic, len(operands), 3); err != nil {
			return nil, err
		}
		rd, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		rs1, err := ParseRegister(operands[1])
		if err != nil {
			return nil, err
		}
		rs2, err := ParseRegister(operands[2])
		if err != nil {
			return nil, err
		}
		return encodeType1(mnemonic, rd, rs1, rs2), nil

	case indexOf(Type2[:], mnemonic) >= 0:
		if err := checkGenericArgs(mnemonic, len(operands), 3); err != nil {
			return nil, err
		}
		rd, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		rs1, err := ParseRegister(operands[1])
		if err != nil {
			return nil, err
		}
		imm, err := ParseIntegerLiteral(operands[2])
		if err != nil {
			return nil, err
		}
		if IsHexOrBinLiteral(operands[2]) {
			if imm < 0 || imm >= (1<<16) {
				return nil, fmt.Errorf("integer constant does not fit in 16-bits: '%s'", operands[2])
			}
			if operands[2][:2] == "0x" && len(operands[2]) > 6 {
				return nil, fmt.Errorf("integer constant is too long: '%s'", operands[2])
			}
		} else if imm < -(1<<15) || imm >= (1<<15) {
			return nil, fmt.Errorf("integer constant does not fit in 16-bits: '%s'", operands[2])
		}
		return encodeType2(mnemonic, rd, rs1, int32(imm)), nil

	case indexOf(Type3[:], mnemonic) >= 0:
		if err := checkGenericArgs(mnemonic, len(operands), 3); err != nil {
			return nil, err
		}
		rs1, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		rs2, err := ParseRegister(operands[1])
		if err != nil {
			return nil, err
		}
		return branchEntry(mnemonic, rs1, rs2, operands[2])

	case mnemonic == "load" || mnemonic == "store":
		if err := checkGenericArgs(mnemonic, len(operands), 2); err != nil {
			return nil, err
		}
		rd, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		return assembleMemOp(mnemonic, rd, operands[1])

	case mnemonic == "jal":
		// "jal rd, rs1" (implicit "+0" distance) or "jal rd, rs1, target".
		if err := checkGenericArgsRange(mnemonic, len(operands), 2, 3); err != nil {
			return nil, err
		}
		rd, err := ParseRegister(operands[0])
		if err != nil {
			return nil, err
		}
		rs1, err := ParseRegister(operands[1])
		if err != nil {
			return nil, err
		}
		target := "+0"
		if len(operands) == 3 {
			target = operands[2]
		}
		entries, err := jalTo(rd, rs1, target)
		if err != nil {
			return nil, err
		}
		return entries[0], nil
	}

	return nil, fmt.Errorf("unknown mnemonic '%s'", mnemonic)
}

// assembleMemOp lowers the bracketed operand of "load"/"store", trying the
// label form first (so "[counter]" resolves to the label, not a register
// parse failure) and falling back to the register+offset form.
func assembleMemOp(mnemonic string, rd int, bracket string) (*Entry, error) {
	if label, offset, ok, err := MemOperandLabel(bracket); err != nil {
		return nil, err
	} else if ok {
		return encodeType4ToLabel(mnemonic, rd, label, offset), nil
	}

	reg, offset, err := MemOperandReg(bracket)
	if err != nil {
		return nil, err
	}
	return encodeType4(mnemonic, rd, reg, offset), nil
}
