package bus

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestRAMReadWriteRoundTrip(t *testing.T) {
	ram := NewRAM("prog.exe")
	assert(t, ram.WriteWord(0x100, 0xDEADBEEF) == nil, "write failed")
	v, err := ram.ReadWord(0x100)
	assert(t, err == nil, "read failed: %v", err)
	assert(t, v == 0xDEADBEEF, "got 0x%08x, want 0xDEADBEEF", v)
}

func TestRAMUninitializedReadIsDeterministic(t *testing.T) {
	a := NewRAM("prog.exe")
	b := NewRAM("prog.exe")
	va, _ := a.ReadWord(0x2000)
	vb, _ := b.ReadWord(0x2000)
	assert(t, va == vb, "uninitialized reads for the same exe path should match: 0x%08x != 0x%08x", va, vb)

	c := NewRAM("other.exe")
	_, err := c.ReadWord(0x2000)
	assert(t, err == nil, "unexpected error: %v", err)
}

func TestRAMOutOfRangeFaults(t *testing.T) {
	ram := NewRAM("prog.exe")
	_, err := ram.ReadWord(RAMBase + RAMSize)
	assert(t, errors.Is(err, ErrInvalidAddress), "expected ErrInvalidAddress, got %v", err)
}

func TestBusRoutesToAttachedDevice(t *testing.T) {
	b := New()
	ram := NewRAM("prog.exe")
	b.Attach(ram)
	assert(t, b.WriteWord(0x10, 42) == nil, "write through bus failed")
	v, err := b.ReadWord(0x10)
	assert(t, err == nil && v == 42, "got v=%d err=%v", v, err)
}

func TestBusUnmappedAddressFaults(t *testing.T) {
	b := New()
	_, err := b.ReadWord(0xFFFFFFFF)
	assert(t, errors.Is(err, ErrInvalidAddress), "expected ErrInvalidAddress, got %v", err)
}

func TestRTCReadsFixedClock(t *testing.T) {
	rtc := NewRTC()
	rtc.Now = func() time.Time { return time.Date(2026, 1, 2, 13, 45, 30, 0, time.UTC) }

	sec, err := rtc.ReadWord(RTCBase + 0x00)
	assert(t, err == nil && sec == 30, "seconds = %d, want 30 (err=%v)", sec, err)

	min, err := rtc.ReadWord(RTCBase + 0x04)
	assert(t, err == nil && min == 45, "minutes = %d, want 45 (err=%v)", min, err)

	hour, err := rtc.ReadWord(RTCBase + 0x08)
	assert(t, err == nil && hour == 13, "hour = %d, want 13 (err=%v)", hour, err)

	err = rtc.WriteWord(RTCBase, 0)
	assert(t, errors.Is(err, ErrInvalidAddress), "RTC writes should always fault")
}

func TestFramebufferWordAlignment(t *testing.T) {
	fb := NewFramebuffer()
	err := fb.WriteWord(FramebufferBase+1, 0x11223300)
	assert(t, errors.Is(err, ErrInvalidAddress), "expected alignment fault, got %v", err)

	err = fb.WriteWord(FramebufferBase, 0xAABBCC00)
	assert(t, err == nil, "aligned write failed: %v", err)
	v, _ := fb.ReadWord(FramebufferBase)
	r, g, bch := PixelRGB(v)
	assert(t, r == 0xAA && g == 0xBB && bch == 0xCC, "got r=%x g=%x b=%x", r, g, bch)
}
