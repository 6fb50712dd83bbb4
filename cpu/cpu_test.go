package cpu

import (
	"errors"
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// testBus is a flat, always-valid word-addressed memory for exercising the
// CPU in isolation from the real bus/device routing.
type testBus struct {
	words map[uint32]uint32
}

func newTestBus(program ...uint32) *testBus {
	b := &testBus{words: make(map[uint32]uint32)}
	for i, w := range program {
		b.words[uint32(i*4)] = w
	}
	return b
}

func (b *testBus) ReadWord(addr uint32) (uint32, error)       { return b.words[addr], nil }
func (b *testBus) WriteWord(addr uint32, value uint32) error { b.words[addr] = value; return nil }

func word1(typ, op, rd, rs1, rs2 uint32) uint32 {
	return typ<<28 | op<<24 | rd<<20 | rs1<<16 | rs2<<12
}

func word2(op, rd, rs1 uint32, imm int32) uint32 {
	return 2<<28 | op<<24 | rd<<20 | rs1<<16 | uint32(uint16(imm))
}

func TestAddRegisterRegister(t *testing.T) {
	bus := newTestBus(word1(1, 0, 1, 2, 3)) // add r1, r2, r3
	c := New(bus, 0)
	c.Regs.Set(2, 10)
	c.Regs.Set(3, 20)
	err := c.Step()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, c.Regs.Get(1) == 30, "r1 = %d, want 30", c.Regs.Get(1))
	assert(t, c.Regs[RegPC] == 4, "pc = %d, want 4", c.Regs[RegPC])
}

func TestRegisterZeroIsWriteOnlyZero(t *testing.T) {
	bus := newTestBus(word2(0, 0, 0, 99)) // addi r0, r0, 99
	c := New(bus, 0)
	assert(t, c.Step() == nil, "unexpected error")
	assert(t, c.Regs.Get(0) == 0, "r0 should stay 0, got %d", c.Regs.Get(0))
}

func TestDivisionByZero(t *testing.T) {
	bus := newTestBus(word1(1, 3, 1, 2, 3)) // div r1, r2, r3
	c := New(bus, 0)
	c.Regs.Set(2, 10)
	c.Regs.Set(3, 0)
	err := c.Step()
	assert(t, errors.Is(err, ErrDivisionByZero), "expected ErrDivisionByZero, got %v", err)
}

func TestIllegalNegativeShiftCount(t *testing.T) {
	bus := newTestBus(word2(8, 1, 1, -1)) // lsli r1, r1, -1
	c := New(bus, 0)
	err := c.Step()
	assert(t, errors.Is(err, ErrIllegalShiftCount), "expected ErrIllegalShiftCount, got %v", err)
}

func TestShiftCountClampsAtThirtyTwo(t *testing.T) {
	bus := newTestBus(word1(1, 8, 1, 2, 3)) // lsl r1, r2, r3
	c := New(bus, 0)
	c.Regs.Set(2, 0xFF)
	c.Regs.Set(3, 40)
	assert(t, c.Step() == nil, "unexpected error")
	assert(t, c.Regs.Get(1) == 0, "lsl by >=32 should clamp to 0, got %d", c.Regs.Get(1))
}

func TestBranchTaken(t *testing.T) {
	// beq r1, r2, +8, at address 0 (rs2 is carried in the rd field for type 3)
	bus := newTestBus(3<<28|0<<24|2<<20|1<<16|uint32(uint16(8)), 0, 0)
	c := New(bus, 0)
	c.Regs.Set(1, 5)
	c.Regs.Set(2, 5)
	assert(t, c.Step() == nil, "unexpected error")
	assert(t, c.Regs[RegPC] == 8, "pc = %d, want 8", c.Regs[RegPC])
}

func TestLoadStoreRoundTrip(t *testing.T) {
	// store r1, [sp+0] then load r2, [sp+0]
	storeWord := 4<<28 | 1<<24 | 1<<20 | 13<<16 | uint32(uint16(0))
	loadWord := 4<<28 | 0<<24 | 2<<20 | 13<<16 | uint32(uint16(0))
	b2 := newTestBus(storeWord, loadWord)
	c := New(b2, 0)
	c.Regs.Set(1, 0xCAFE)
	c.Regs.Set(13, 100)
	assert(t, c.Step() == nil, "store failed")
	assert(t, c.Step() == nil, "load failed")
	assert(t, c.Regs.Get(2) == 0xCAFE, "r2 = 0x%x, want 0xCAFE", c.Regs.Get(2))
}

func TestJalSetsLinkAndJumps(t *testing.T) {
	// jal lr, r3, +16: target must be regs[r3]+16, not pc+16, so r3 is set
	// to a base address distinct from pc to actually exercise rs1.
	word := 5<<28 | 0<<24 | 14<<20 | 3<<16 | uint32(uint16(16))
	bus := newTestBus(word)
	c := New(bus, 0)
	c.Regs.Set(3, 100)
	assert(t, c.Step() == nil, "unexpected error")
	assert(t, c.Regs.Get(14) == 4, "lr = %d, want 4", c.Regs.Get(14))
	assert(t, c.Regs[RegPC] == 116, "pc = %d, want 116", c.Regs[RegPC])
}

func TestSltiuAliasMakesSeqzAlwaysFalse(t *testing.T) {
	// sltiu r1, r2, 0 can never be true, matching the assembler's
	// bug-compatible "seqz" expansion. See DESIGN.md open question (ii).
	bus := newTestBus(word2(12, 1, 2, 0))
	c := New(bus, 0)
	c.Regs.Set(2, 0)
	assert(t, c.Step() == nil, "unexpected error")
	assert(t, c.Regs.Get(1) == 0, "sltiu rd,rs,0 should always be false, got %d", c.Regs.Get(1))
}
