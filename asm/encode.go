package asm

import "fmt"

// encodeType1 builds a register-register ALU instruction: "op rd, rs1, rs2".
func encodeType1(op string, rd, rs1, rs2 int) *Entry {
	return &Entry{Enc: Encoded{
		Type: 1,
		Op:   uint8(indexOf(Type1[:], op)),
		Rd:   uint8(rd),
		Rs1:  uint8(rs1),
		Rs2:  uint8(rs2),
	}}
}

// encodeType2 builds a register-immediate ALU instruction: "op rd, rs1, imm".
func encodeType2(op string, rd, rs1 int, imm int32) *Entry {
	return &Entry{Enc: Encoded{
		Type: 2,
		Op:   uint8(indexOf(Type2[:], op)),
		Rd:   uint8(rd),
		Rs1:  uint8(rs1),
		Imm:  imm,
	}}
}

// encodeType3 builds a conditional branch instruction: "op rs1, rs2, +/-dist".
// rs2 is carried in the Rd field, which the CPU reads as the second operand.
func encodeType3(op string, rs1, rs2 int, dist int32) *Entry {
	return &Entry{Enc: Encoded{
		Type: 3,
		Op:   uint8(indexOf(Type3[:], op)),
		Rs1:  uint8(rs1),
		Rd:   uint8(rs2),
		Imm:  dist,
	}}
}

// encodeType3ToLabel builds a conditional branch deferred against a label.
func encodeType3ToLabel(op string, rs1, rs2 int, label string) *Entry {
	e := encodeType3(op, rs1, rs2, 0)
	e.Target = label
	return e
}

// encodeType4 builds a load/store instruction: "load rd, [rs1+imm]" / "store rd, [rs1+imm]".
func encodeType4(op string, rd, rs1 int, imm int32) *Entry {
	return &Entry{Enc: Encoded{
		Type: 4,
		Op:   uint8(indexOf(Type4[:], op)),
		Rd:   uint8(rd),
		Rs1:  uint8(rs1),
		Imm:  imm,
	}}
}

// encodeType4ToLabel builds a deferred load/store against "[label+/-k]",
// addressed relative to pc. The label distance is resolved in pass 2 and
// extraOffset is added afterwards (documented overflow leniency, see
// DESIGN.md open question (i)).
func encodeType4ToLabel(op string, rd int, label string, extraOffset int32) *Entry {
	const pc = 15
	e := encodeType4(op, rd, pc, 0)
	e.Target = label
	e.ExtraOffset = extraOffset
	return e
}

// encodeType5ToLabel builds "jal rd, rs1, label".
func encodeType5ToLabel(rd, rs1 int, label string) *Entry {
	e := &Entry{Enc: Encoded{Type: 5, Op: 0, Rd: uint8(rd), Rs1: uint8(rs1)}}
	e.Target = label
	return e
}

// encodeType5 builds "jal rd, rs1, +/-dist".
func encodeType5(rd, rs1 int, dist int32) *Entry {
	return &Entry{Enc: Encoded{Type: 5, Op: 0, Rd: uint8(rd), Rs1: uint8(rs1), Imm: dist}}
}

// checkGenericArgs validates an operand count against what a mnemonic needs.
func checkGenericArgs(mnemonic string, got, want int) error {
	if got != want {
		return fmt.Errorf("'%s' requires exactly %d argument(s), got %d", mnemonic, want, got)
	}
	return nil
}

// checkGenericArgsRange validates an operand count against an inclusive
// [min, max] range, for mnemonics with an optional trailing operand.
func checkGenericArgsRange(mnemonic string, got, min, max int) error {
	if got < min || got > max {
		return fmt.Errorf("'%s' requires %d to %d argument(s), got %d", mnemonic, min, max, got)
	}
	return nil
}
