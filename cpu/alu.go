package cpu

// regOps implements the 13 type-1 (register-register) ALU operations,
// indexed the same way the assembler orders Type1 mnemonics: add, sub, mul,
// div, mod, or, and, xor, lsl, lsr, asr, slt, sltu.
var regOps = map[uint32]func(a, b uint32) (uint32, error){
	0:  func(a, b uint32) (uint32, error) { return a + b, nil },
	1:  func(a, b uint32) (uint32, error) { return a - b, nil },
	2:  func(a, b uint32) (uint32, error) { return a * b, nil },
	3:  func(a, b uint32) (uint32, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return u32(s32(a) / s32(b)), nil
	},
	4: func(a, b uint32) (uint32, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return u32(s32(a) % s32(b)), nil
	},
	5:  func(a, b uint32) (uint32, error) { return a | b, nil },
	6:  func(a, b uint32) (uint32, error) { return a & b, nil },
	7:  func(a, b uint32) (uint32, error) { return a ^ b, nil },
	8:  func(a, b uint32) (uint32, error) { return shiftLeft(a, b), nil },
	9:  func(a, b uint32) (uint32, error) { return shiftRightLogical(a, b), nil },
	10: func(a, b uint32) (uint32, error) { return shiftRightArith(a, b), nil },
	11: func(a, b uint32) (uint32, error) { return boolToWord(s32(a) < s32(b)), nil },
	12: func(a, b uint32) (uint32, error) { return boolToWord(a < b), nil },
}

// immOps implements the 13 type-2 (register-immediate) ALU operations, in
// the same order as Type2: addi, subi, muli, divi, modi, ori, andi, xori,
// lsli, lsri, asri, slti, sltiu. lsli/lsri/asri reject a negative immediate
// shift count outright rather than reinterpreting it as a huge unsigned
// count, matching the reference's illegal-shift-count fault.
var immOps = map[uint32]func(a uint32, imm int32) (uint32, error){
	0: func(a uint32, imm int32) (uint32, error) { return a + u32(imm), nil },
	1: func(a uint32, imm int32) (uint32, error) { return a - u32(imm), nil },
	2: func(a uint32, imm int32) (uint32, error) { return a * u32(imm), nil },
	3: func(a uint32, imm int32) (uint32, error) {
		if imm == 0 {
			return 0, ErrDivisionByZero
		}
		return u32(s32(a) / imm), nil
	},
	4: func(a uint32, imm int32) (uint32, error) {
		if imm == 0 {
			return 0, ErrDivisionByZero
		}
		return u32(s32(a) % imm), nil
	},
	5: func(a uint32, imm int32) (uint32, error) { return a | u32(imm), nil },
	6: func(a uint32, imm int32) (uint32, error) { return a & u32(imm), nil },
	7: func(a uint32, imm int32) (uint32, error) { return a ^ u32(imm), nil },
	8: func(a uint32, imm int32) (uint32, error) {
		if imm < 0 {
			return 0, ErrIllegalShiftCount
		}
		return shiftLeft(a, uint32(imm)), nil
	},
	9: func(a uint32, imm int32) (uint32, error) {
		if imm < 0 {
			return 0, ErrIllegalShiftCount
		}
		return shiftRightLogical(a, uint32(imm)), nil
	},
	10: func(a uint32, imm int32) (uint32, error) {
		if imm < 0 {
			return 0, ErrIllegalShiftCount
		}
		return shiftRightArith(a, uint32(imm)), nil
	},
	11: func(a uint32, imm int32) (uint32, error) { return boolToWord(s32(a) < imm), nil },
	// sltiu is aliased to the unsigned comparison, same as the reference
	// ALU table ("sltiu" = "sltu"): the immediate is sign-extended to an
	// unsigned 32-bit value first, which is what makes "seqz" (sltiu rd,
	// rs, 0) always false.
	12: func(a uint32, imm int32) (uint32, error) { return boolToWord(a < u32(imm)), nil },
}

// condOps implements the 6 type-3 branch conditions, in Type3 order: beq,
// bne, blt, bge, bltu, bgeu.
var condOps = map[uint32]func(a, b uint32) bool{
	0: func(a, b uint32) bool { return a == b },
	1: func(a, b uint32) bool { return a != b },
	2: func(a, b uint32) bool { return s32(a) < s32(b) },
	3: func(a, b uint32) bool { return s32(a) >= s32(b) },
	4: func(a, b uint32) bool { return a < b },
	5: func(a, b uint32) bool { return a >= b },
}

func boolToWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func shiftLeft(a, count uint32) uint32 {
	if count >= 32 {
		return 0
	}
	return a << count
}

func shiftRightLogical(a, count uint32) uint32 {
	if count >= 32 {
		return 0
	}
	return a >> count
}

// shiftRightArith is an arithmetic shift: a shift count of 32 or more
// collapses to all-ones when a is negative (sign fills the whole word),
// and to 0 otherwise.
func shiftRightArith(a, count uint32) uint32 {
	if count >= 32 {
		if s32(a) < 0 {
			return 0xFFFFFFFF
		}
		return 0
	}
	return u32(s32(a) >> count)
}
