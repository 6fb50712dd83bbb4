package bus

import (
	"fmt"
	"time"
)

// RTC base/size: 0xA0000000-0xA00000FF, read-only.
const (
	RTCBase = 0xA0000000
	RTCSize = 0x100

	rtcSecondsAddr = RTCBase + 0x00
	rtcMinutesAddr = RTCBase + 0x04
	rtcHourAddr    = RTCBase + 0x08
)

// RTC is a read-only real-time-clock device backed by the host's local
// time. Writes always fault.
type RTC struct {
	// Now is called for every read so tests can substitute a fixed clock.
	Now func() time.Time
}

// NewRTC returns an RTC reading from the host's wall clock.
func NewRTC() *RTC {
	return &RTC{Now: time.Now}
}

func (c *RTC) Contains(addr uint32) bool {
	return addr >= RTCBase && addr < RTCBase+RTCSize
}

func (c *RTC) ReadWord(addr uint32) (uint32, error) {
	now := c.Now()
	switch addr {
	case rtcSecondsAddr:
		return uint32(now.Second()), nil
	case rtcMinutesAddr:
		return uint32(now.Minute()), nil
	case rtcHourAddr:
		return uint32(now.Hour()), nil
	}
	return 0, fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, addr)
}

func (c *RTC) WriteWord(addr uint32, value uint32) error {
	return fmt.Errorf("%w: 0x%08x (RTC is read-only)", ErrInvalidAddress, addr)
}
