package bus

import (
	"encoding/binary"
	"fmt"

	"scat/internal/randbytes"
)

// RAM base/size: 0x00000000-0x0FFFFFFF.
const (
	RAMBase = 0x00000000
	RAMSize = 0x10000000
)

// RAM is byte-addressed and only materializes bytes that have actually been
// written; everything else reads back as a deterministic "uninitialized"
// value derived from the executable's path, instead of always-zero.
type RAM struct {
	mem  map[uint32]byte
	rand *randbytes.Source
}

// NewRAM returns an empty RAM seeded for deterministic uninitialized reads
// from exePath (normally the .exe file being simulated).
func NewRAM(exePath string) *RAM {
	return &RAM{
		mem:  make(map[uint32]byte),
		rand: randbytes.NewSource(exePath),
	}
}

// LoadWord preloads a word at addr, used to install the program image
// before execution starts.
func (r *RAM) LoadWord(addr uint32, value uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	for i, b := range buf {
		r.mem[addr+uint32(i)] = b
	}
}

func (r *RAM) Contains(addr uint32) bool {
	return addr >= RAMBase && uint64(addr) < uint64(RAMBase)+uint64(RAMSize)
}

func (r *RAM) readByte(addr uint32) byte {
	if b, ok := r.mem[addr]; ok {
		return b
	}
	return r.rand.Byte(addr)
}

// ReadWord reads 4 bytes big-endian starting at addr.
func (r *RAM) ReadWord(addr uint32) (uint32, error) {
	if !r.wordInRange(addr) {
		return 0, fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, addr)
	}
	var buf [4]byte
	for i := range buf {
		buf[i] = r.readByte(addr + uint32(i))
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// WriteWord writes 4 bytes big-endian starting at addr.
func (r *RAM) WriteWord(addr uint32, value uint32) error {
	if !r.wordInRange(addr) {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, addr)
	}
	r.LoadWord(addr, value)
	return nil
}

func (r *RAM) wordInRange(addr uint32) bool {
	return r.Contains(addr) && r.Contains(addr+3)
}

// Bytes returns a snapshot of addr..addr+n-1 for display (memdump), reading
// through the same deterministic-uninitialized logic as ReadWord.
func (r *RAM) Bytes(addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = r.readByte(addr + uint32(i))
	}
	return out
}
