package debugger

import (
	"fmt"
	"time"

	"scat/bus"
	"scat/cpu"
	"scat/listing"
)

// Machine ties a CPU to its bus and the listing that describes it, plus the
// breakpoint table and performance counters the REPL commands operate on.
type Machine struct {
	CPU *cpu.CPU
	Bus *bus.Bus
	RAM *bus.RAM
	FB  *bus.Framebuffer
	Lst *listing.Listing

	ExePath string

	Breakpoints map[uint32]bool

	perfStart      time.Time
	perfSteps      uint64
	perfRunning    bool
}

// NewMachine wires RAM, RTC, and a framebuffer onto a fresh bus and CPU,
// mirroring the reference simulator's fixed address map.
func NewMachine(exePath string, entry uint32) *Machine {
	b := bus.New()
	ram := bus.NewRAM(exePath)
	rtc := bus.NewRTC()
	fb := bus.NewFramebuffer()
	b.Attach(ram)
	b.Attach(rtc)
	b.Attach(fb)

	return &Machine{
		CPU:         cpu.New(b, entry),
		Bus:         b,
		RAM:         ram,
		FB:          fb,
		ExePath:     exePath,
		Breakpoints: make(map[uint32]bool),
	}
}

// LoadExe preloads a parsed .exe image (address -> word) into RAM.
func (m *Machine) LoadExe(words map[uint32]uint32) {
	for addr, word := range words {
		m.RAM.LoadWord(addr, word)
	}
}

// WriteWord writes through the bus and, for RAM addresses backed by the
// listing, keeps the listing's displayed hex bytes in sync. The CPU's own
// stores go straight to m.Bus, not through this method, so instructions run
// by Step do not update the listing.
func (m *Machine) WriteWord(addr uint32, value uint32) error {
	if err := m.Bus.WriteWord(addr, value); err != nil {
		return err
	}
	if m.Lst != nil {
		m.Lst.Update(addr, value)
	}
	return nil
}

// Step executes one instruction, tracking it against the running perf
// counters if "perf" is active.
func (m *Machine) Step() error {
	err := m.CPU.Step()
	if m.perfRunning {
		m.perfSteps++
	}
	return err
}

// AtBreakpoint reports whether the CPU is currently sitting on a breakpoint
// address.
func (m *Machine) AtBreakpoint() bool {
	return m.Breakpoints[m.CPU.Regs[cpu.RegPC]]
}

// PerfStart resets and (re)starts the step/wall-clock counters.
func (m *Machine) PerfStart() {
	m.perfStart = time.Now()
	m.perfSteps = 0
	m.perfRunning = true
}

// PerfStop freezes the counters and returns a human-readable report.
func (m *Machine) PerfStop() string {
	m.perfRunning = false
	elapsed := time.Since(m.perfStart).Seconds()
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(m.perfSteps) / elapsed
	}
	return fmt.Sprintf("%s instructions in %s (%s instructions/sec)",
		Eng(float64(m.perfSteps)), Time2s(elapsed), Eng(rate))
}
