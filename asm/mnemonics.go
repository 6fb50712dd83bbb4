package asm

import "regexp"

// Base instruction mnemonic tables, fixed order (index == opcode), mirroring
// asm.py's type1..type5 lists.
var (
	Type1 = [...]string{"add", "sub", "mul", "div", "mod", "or", "and", "xor", "lsl", "lsr", "asr", "slt", "sltu"}
	Type2 = [...]string{"addi", "subi", "muli", "divi", "modi", "ori", "andi", "xori", "lsli", "lsri", "asri", "slti", "sltiu"}
	Type3 = [...]string{"beq", "bne", "blt", "bge", "bltu", "bgeu"}
	Type4 = [...]string{"load", "store"}
	Type5 = [...]string{"jal"}

	pseudoJumps = [...]string{"beqz", "bnez", "blez", "bgez", "bltz", "bgtz", "bgt", "ble", "bgtu", "bleu", "bra"}
	pseudoOther = [...]string{
		"leti", "push", "pop", "dec", "inc", "mov", "nop",
		"not", "neg", "seqz", "snez", "sltz", "sgtz", "jmp", "call", "ret",
	}
)

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}

// IsMnemonic reports whether word names a base instruction.
func IsMnemonic(word string) bool {
	for _, list := range [][]string{Type1[:], Type2[:], Type3[:], Type4[:], Type5[:]} {
		if indexOf(list, word) >= 0 {
			return true
		}
	}
	return false
}

// IsPseudoMnemonic reports whether word names a pseudo-instruction or one of
// the .word/.space/.align directives.
func IsPseudoMnemonic(word string) bool {
	if indexOf(pseudoJumps[:], word) >= 0 || indexOf(pseudoOther[:], word) >= 0 {
		return true
	}
	return word == ".word" || word == ".space" || word == ".align"
}

func regexpMustCompileLabel() *regexp.Regexp {
	return regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
}
