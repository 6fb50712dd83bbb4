// Package bus implements the SCAT address space: RAM, a read-only
// real-time-clock region, and a memory-mapped framebuffer, routed by
// address range exactly as the CPU's load/store instructions address them.
package bus

import "fmt"

// Device is one memory-mapped region. ReadWord/WriteWord receive an
// address already relative to the device's own base.
type Device interface {
	Contains(addr uint32) bool
	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, value uint32) error
}

// ErrInvalidAddress is returned for any access that lands outside every
// mapped device.
var ErrInvalidAddress = fmt.Errorf("memory error: invalid address")

// Bus routes word accesses to whichever Device claims the address.
type Bus struct {
	devices []Device
}

// New returns a Bus with no devices attached; use Attach to map regions.
func New() *Bus {
	return &Bus{}
}

// Attach adds a device to the routing table. Later-attached devices are not
// consulted before earlier ones, so overlapping ranges should be avoided.
func (b *Bus) Attach(d Device) {
	b.devices = append(b.devices, d)
}

func (b *Bus) find(addr uint32) Device {
	for _, d := range b.devices {
		if d.Contains(addr) {
			return d
		}
	}
	return nil
}

// ReadWord reads the big-endian 32-bit word at addr.
func (b *Bus) ReadWord(addr uint32) (uint32, error) {
	d := b.find(addr)
	if d == nil {
		return 0, fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, addr)
	}
	return d.ReadWord(addr)
}

// WriteWord writes the big-endian 32-bit word value at addr.
func (b *Bus) WriteWord(addr uint32, value uint32) error {
	d := b.find(addr)
	if d == nil {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, addr)
	}
	return d.WriteWord(addr, value)
}
