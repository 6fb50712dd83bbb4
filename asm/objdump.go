package asm

import (
	"fmt"
	"sort"
	"strings"
)

// objdumpRegName renders a register index using the same aliases the
// assembler accepts on input: r0 -> zero, r13 -> sp, r14 -> lr, r15 -> pc.
func objdumpRegName(n uint32) string {
	switch n {
	case 0:
		return "zero"
	case 13:
		return "sp"
	case 14:
		return "lr"
	case 15:
		return "pc"
	default:
		return fmt.Sprintf("r%d", n)
	}
}

func nibbleField(word uint32, shift uint, width uint) uint32 {
	return (word >> shift) & ((1 << width) - 1)
}

// branchTargets returns every address referenced as a branch/jump target by
// a type-3, type-5, or "addi pc, pc, imm" (bra) word in words.
func branchTargets(words map[uint32]uint32) map[uint32]bool {
	targets := make(map[uint32]bool)
	for addr, word := range words {
		typ := nibbleField(word, 28, 4)
		op := nibbleField(word, 24, 4)
		imm := int32(int16(word & 0xFFFF))
		switch typ {
		case 3:
			targets[uint32(int64(addr)+int64(imm))] = true
		case 5:
			rs1 := nibbleField(word, 16, 4)
			if rs1 == 15 { // only pc-relative jal/jmp/call targets are known statically
				targets[uint32(int64(addr)+int64(imm))] = true
			}
		case 2:
			rd := nibbleField(word, 20, 4)
			rs1 := nibbleField(word, 16, 4)
			if op == 0 && rd == 15 && rs1 == 15 { // addi pc, pc, imm
				targets[uint32(int64(addr)+int64(imm))] = true
			}
		}
	}
	return targets
}

// Disassemble renders a heuristic listing of words: label headers for every
// discovered branch target, push/pop magic-word folding, and register
// aliasing matching the assembler's input syntax.
func Disassemble(words map[uint32]uint32) string {
	addrs := make([]uint32, 0, len(words))
	for a := range words {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	labels := branchTargets(words)
	labelNames := make(map[uint32]string, len(labels))
	for a := range labels {
		labelNames[a] = fmt.Sprintf("loc_%x", a)
	}

	var b strings.Builder
	skip := make(map[uint32]bool)

	for idx, addr := range addrs {
		if skip[addr] {
			continue
		}
		if name, ok := labelNames[addr]; ok {
			fmt.Fprintf(&b, "%s:\n", name)
		}

		word := words[addr]

		if word == pushSubi && idx+1 < len(addrs) {
			next := addrs[idx+1]
			if rd, ok := decodeStoreSP(words[next]); ok && next == addr+4 {
				fmt.Fprintf(&b, "%08x:  push %s\n", addr, objdumpRegName(rd))
				skip[next] = true
				continue
			}
		}
		if rd, ok := decodeLoadSP(word); ok && idx+1 < len(addrs) {
			next := addrs[idx+1]
			if words[next] == popAddi && next == addr+4 {
				fmt.Fprintf(&b, "%08x:  pop %s\n", addr, objdumpRegName(rd))
				skip[next] = true
				continue
			}
		}

		fmt.Fprintf(&b, "%08x:  %s\n", addr, decodeWord(addr, word, labelNames))
	}
	return strings.TrimRight(b.String(), "\n")
}

func decodeStoreSP(word uint32) (rd uint32, ok bool) {
	typ, op := nibbleField(word, 28, 4), nibbleField(word, 24, 4)
	if typ != 4 || op != 1 { // store
		return 0, false
	}
	if nibbleField(word, 16, 4) != 13 || int16(word&0xFFFF) != 0 {
		return 0, false
	}
	return nibbleField(word, 20, 4), true
}

func decodeLoadSP(word uint32) (rd uint32, ok bool) {
	typ, op := nibbleField(word, 28, 4), nibbleField(word, 24, 4)
	if typ != 4 || op != 0 { // load
		return 0, false
	}
	if nibbleField(word, 16, 4) != 13 || int16(word&0xFFFF) != 0 {
		return 0, false
	}
	return nibbleField(word, 20, 4), true
}

func decodeWord(addr, word uint32, labelNames map[uint32]string) string {
	typ := nibbleField(word, 28, 4)
	op := nibbleField(word, 24, 4)

	targetText := func(imm int32) string {
		target := uint32(int64(addr) + int64(imm))
		if name, ok := labelNames[target]; ok {
			return name
		}
		return fmt.Sprintf("0x%x", target)
	}

	switch typ {
	case 1:
		if int(op) >= len(Type1) {
			return fmt.Sprintf(".word 0x%08x", word)
		}
		rd, rs1, rs2 := nibbleField(word, 20, 4), nibbleField(word, 16, 4), nibbleField(word, 12, 4)
		return fmt.Sprintf("%-6s%s, %s, %s", Type1[op], objdumpRegName(rd), objdumpRegName(rs1), objdumpRegName(rs2))

	case 2:
		if int(op) >= len(Type2) {
			return fmt.Sprintf(".word 0x%08x", word)
		}
		rd, rs1 := nibbleField(word, 20, 4), nibbleField(word, 16, 4)
		imm := int32(int16(word & 0xFFFF))
		if op == 0 && rd == 15 && rs1 == 15 {
			return fmt.Sprintf("%-6s%s", "bra", targetText(imm))
		}
		return fmt.Sprintf("%-6s%s, %s, %d", Type2[op], objdumpRegName(rd), objdumpRegName(rs1), imm)

	case 3:
		if int(op) >= len(Type3) {
			return fmt.Sprintf(".word 0x%08x", word)
		}
		rs1, rs2 := nibbleField(word, 16, 4), nibbleField(word, 20, 4)
		imm := int32(int16(word & 0xFFFF))
		return fmt.Sprintf("%-6s%s, %s, %s", Type3[op], objdumpRegName(rs1), objdumpRegName(rs2), targetText(imm))

	case 4:
		if int(op) >= len(Type4) {
			return fmt.Sprintf(".word 0x%08x", word)
		}
		rd, rs1 := nibbleField(word, 20, 4), nibbleField(word, 16, 4)
		imm := int32(int16(word & 0xFFFF))
		if imm == 0 {
			return fmt.Sprintf("%-6s%s, [%s]", Type4[op], objdumpRegName(rd), objdumpRegName(rs1))
		}
		return fmt.Sprintf("%-6s%s, [%s%+d]", Type4[op], objdumpRegName(rd), objdumpRegName(rs1), imm)

	case 5:
		rd := nibbleField(word, 20, 4)
		rs1 := nibbleField(word, 16, 4)
		imm := int32(int16(word & 0xFFFF))
		switch {
		case rd == 0 && rs1 == 15: // jal zero, pc, target
			return fmt.Sprintf("%-6s%s", "jmp", targetText(imm))
		case rd == 14 && rs1 == 15: // jal lr, pc, target
			return fmt.Sprintf("%-6s%s", "call", targetText(imm))
		case rd == 0 && rs1 == 14 && imm == 0: // jal zero, lr, +0
			return "ret"
		case rs1 == 15:
			return fmt.Sprintf("%-6s%s, %s", "jal", objdumpRegName(rd), targetText(imm))
		default:
			return fmt.Sprintf("%-6s%s, %s, %+d", "jal", objdumpRegName(rd), objdumpRegName(rs1), imm)
		}
	}

	return fmt.Sprintf(".word 0x%08x", word)
}
