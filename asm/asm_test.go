package asm

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func assembleOK(t *testing.T, source string) *Executable {
	t.Helper()
	lines := splitSourceLines(source)
	ex, err := Assemble("test.s", lines)
	assert(t, err == nil, "unexpected assemble error: %v", err)
	return ex
}

func splitSourceLines(source string) []string {
	var lines []string
	start := 0
	for i, c := range source {
		if c == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	lines = append(lines, source[start:])
	return lines
}

func TestBaseInstructionEncoding(t *testing.T) {
	ex := assembleOK(t, "add r1, r2, r3\n")
	word := ex.Contents[0].Encode()
	assert(t, word == 0x10123000, "add r1,r2,r3 encoded as 0x%08x, want 0x10123000", word)
}

func TestImmediateRangeCheck(t *testing.T) {
	_, err := Assemble("test.s", splitSourceLines("addi r1, r1, 40000\n"))
	assert(t, err != nil, "expected an error for an out-of-range immediate")
}

func TestLabelResolution(t *testing.T) {
	src := "start:\n" +
		"  beqz r1, done\n" +
		"  addi r1, r1, 1\n" +
		"done:\n" +
		"  ret\n"
	ex := assembleOK(t, src)
	assert(t, ex.Symbols["start"] == 0, "start at wrong address: %d", ex.Symbols["start"])
	assert(t, ex.Symbols["done"] == 8, "done at wrong address: %d", ex.Symbols["done"])

	branch := ex.Contents[0].Encode()
	imm := int16(branch & 0xFFFF)
	assert(t, imm == 8, "beqz distance is %d, want 8", imm)
}

func TestUndefinedSymbol(t *testing.T) {
	_, err := Assemble("test.s", splitSourceLines("jmp nowhere\n"))
	assert(t, err != nil, "expected an error for an undefined symbol")
}

func TestPushPopExpandsToTwoWords(t *testing.T) {
	ex := assembleOK(t, "push r3\npop r3\n")
	assert(t, len(ex.Contents) == 4, "push+pop should expand to 4 words, got %d", len(ex.Contents))
	assert(t, ex.Contents[0].Encode() == pushSubi, "first push word should be the subi sp,sp,4 magic word")
	assert(t, ex.Contents[12].Encode() == popAddi, "second pop word should be the addi sp,sp,4 magic word")
}

func TestLetiSmallLiteral(t *testing.T) {
	ex := assembleOK(t, "leti r1, 100\n")
	assert(t, len(ex.Contents) == 1, "small leti should expand to one instruction, got %d", len(ex.Contents))
}

func TestLetiWideLiteral(t *testing.T) {
	ex := assembleOK(t, "leti r1, 0x12345678\n")
	assert(t, len(ex.Contents) == 3, "wide leti should expand to three instructions, got %d", len(ex.Contents))
}

func TestLetiLabel(t *testing.T) {
	ex := assembleOK(t, "leti r1, target\ntarget:\n  nop\n")
	assert(t, ex.Contents[0].Target == "target", "leti to a label should defer against it")
}

func TestSeqzAlwaysFalseQuirk(t *testing.T) {
	// Bug-compatible: "seqz rd, rs" expands to "sltiu rd, rs, 0", which can
	// never be true. See DESIGN.md open question (ii).
	ex := assembleOK(t, "seqz r1, r2\n")
	word := ex.Contents[0].Encode()
	op := (word >> 24) & 0xF
	assert(t, Type2[op] == "sltiu", "seqz should expand to sltiu, got %s", Type2[op])
	imm := int16(word & 0xFFFF)
	assert(t, imm == 0, "seqz's sltiu immediate should be 0, got %d", imm)
}

func TestLoadStoreLabelOverflowLeniency(t *testing.T) {
	// Bug-compatible: the extra offset is added to the resolved label
	// distance *after* the 16-bit range check, so a small extra offset can
	// silently push the final immediate out of range. See DESIGN.md open
	// question (i).
	e := encodeType4ToLabel("load", 1, "target", 40000)
	err := e.Resolve(map[string]uint32{"target": 0}, 0)
	assert(t, err == nil, "leniency case should not error: %v", err)
	assert(t, e.Enc.Imm == 40000, "expected imm 40000 (no range check after adding extraOffset), got %d", e.Enc.Imm)
}

func TestDotWordAndSpaceDirectives(t *testing.T) {
	// .space emits no entries at all: it's a hollow cursor advance, not
	// zero-padding, and doesn't require a multiple of 4.
	ex := assembleOK(t, ".word 0xdeadbeef\n.space 7\n.word 0xcafef00d\n")
	assert(t, len(ex.Contents) == 2, "expected exactly 2 words, got %d", len(ex.Contents))
	assert(t, ex.Contents[0].Encode() == 0xdeadbeef, "got 0x%08x", ex.Contents[0].Encode())
	assert(t, ex.Contents[11].Encode() == 0xcafef00d, "expected the second word at address 11, got %v", ex.Contents[11])
}

func TestAlignDirectiveAdvancesCursorOnly(t *testing.T) {
	ex := assembleOK(t, ".word 0xdeadbeef\n.space 3\n.align 8\n.word 0xcafef00d\n")
	assert(t, len(ex.Contents) == 2, "expected exactly 2 words, got %d", len(ex.Contents))
	assert(t, ex.Contents[8].Encode() == 0xcafef00d, "expected the second word at address 8 after aligning, got %v", ex.Contents[8])
}

func TestRetEncodesAsType5Jal(t *testing.T) {
	ex := assembleOK(t, "ret\n")
	word := ex.Contents[0].Encode()
	assert(t, word == 0x500e0000, "ret encoded as 0x%08x, want 0x500e0000", word)
}

func TestJalThreeOperandForm(t *testing.T) {
	ex := assembleOK(t, "jal r5, r3, +8\n")
	word := ex.Contents[0].Encode()
	assert(t, word == 0x50530008, "jal r5,r3,+8 encoded as 0x%08x, want 0x50530008", word)
}

func TestJalTwoOperandFormImpliesZeroDistance(t *testing.T) {
	ex := assembleOK(t, "jal r5, r3\n")
	word := ex.Contents[0].Encode()
	assert(t, word == 0x50530000, "jal r5,r3 encoded as 0x%08x, want 0x50530000", word)
}

func TestJalToLabelRequiresPcBaseRegister(t *testing.T) {
	_, err := Assemble("test.s", splitSourceLines("jal r0, r3, target\ntarget:\n  nop\n"))
	assert(t, err != nil, "expected an error when a label-targeted jal doesn't use r15 as rs1")
}

func TestHexImmediateAllowsUnsigned16Bit(t *testing.T) {
	ex := assembleOK(t, "addi r1, r1, 0xFFFF\n")
	word := ex.Contents[0].Encode()
	imm := uint16(word & 0xFFFF)
	assert(t, imm == 0xFFFF, "got imm 0x%04x, want 0xFFFF", imm)
}

func TestHexImmediateTooLong(t *testing.T) {
	_, err := Assemble("test.s", splitSourceLines("addi r1, r1, 0x1FFFF\n"))
	assert(t, err != nil, "expected an error for a hex literal longer than 4 digits")
}

func TestDecimalImmediateStaysSignedRange(t *testing.T) {
	_, err := Assemble("test.s", splitSourceLines("addi r1, r1, 40000\n"))
	assert(t, err != nil, "expected an error for a decimal literal outside the signed 16-bit range")
}

func TestParseIntegerLiteralVariants(t *testing.T) {
	cases := map[string]int64{
		"100":   100,
		"-100":  -100,
		"0x1F":  31,
		"0b101": 5,
	}
	for text, want := range cases {
		got, err := ParseIntegerLiteral(text)
		assert(t, err == nil, "%s: unexpected error: %v", text, err)
		assert(t, got == want, "%s: got %d, want %d", text, got, want)
	}

	for _, bad := range []string{"", "--1", "+1", "-0x1", "-0b1", "abc"} {
		_, err := ParseIntegerLiteral(bad)
		assert(t, err != nil, "%s: expected an error", bad)
	}
}

func TestParseRegisterAliases(t *testing.T) {
	cases := map[string]int{"r0": 0, "zero": 0, "sp": 13, "r13": 13, "lr": 14, "pc": 15}
	for text, want := range cases {
		got, err := ParseRegister(text)
		assert(t, err == nil, "%s: unexpected error: %v", text, err)
		assert(t, got == want, "%s: got %d, want %d", text, got, want)
	}
}

func TestMemOperandParsing(t *testing.T) {
	reg, off, err := MemOperandReg("[sp+4]")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, reg == 13 && off == 4, "got reg=%d off=%d", reg, off)

	name, off, ok, err := MemOperandLabel("[counter-4]")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, ok && name == "counter" && off == -4, "got name=%s off=%d ok=%v", name, off, ok)

	_, _, ok, err = MemOperandLabel("[r3]")
	assert(t, err == nil && !ok, "[r3] should not parse as a label operand")
}
