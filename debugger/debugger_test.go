package debugger

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestEngFormatsMagnitudes(t *testing.T) {
	cases := map[float64]string{
		500:        "500.00",
		1500:       "1.50K",
		2_500_000:  "2.50M",
		3_000_000_000: "3.00G",
	}
	for in, want := range cases {
		got := Eng(in)
		assert(t, got == want, "Eng(%v) = %q, want %q", in, got, want)
	}
}

func TestTime2sFormatsDurations(t *testing.T) {
	cases := map[float64]string{
		0.0000005: "0.50us",
		0.0015:    "1.50ms",
		1.5:       "1.50s",
		90:        "1.50m",
		3600 * 2:  "2.00h",
	}
	for in, want := range cases {
		got := Time2s(in)
		assert(t, got == want, "Time2s(%v) = %q, want %q", in, got, want)
	}
}

func TestBreakpointToggleCommand(t *testing.T) {
	m := NewMachine("test.exe", 0)
	var out bytes.Buffer
	r := &REPL{Machine: m, Out: &out}

	assert(t, cmdBreak(r, []string{"0x10"}) == nil, "set breakpoint failed")
	assert(t, m.Breakpoints[0x10], "breakpoint at 0x10 should be set")

	assert(t, cmdBreak(r, []string{"0x10"}) == nil, "clear breakpoint failed")
	assert(t, !m.Breakpoints[0x10], "breakpoint at 0x10 should be cleared")
}

func TestStepCommandRequiresPositiveCount(t *testing.T) {
	m := NewMachine("test.exe", 0)
	r := &REPL{Machine: m, Out: &bytes.Buffer{}}

	err := cmdStep(r, []string{"-1"})
	_, isUserErr := err.(*UserError)
	assert(t, isUserErr, "expected a UserError for a negative step count, got %v", err)
}

func TestHelpListsEveryCommandOnce(t *testing.T) {
	m := NewMachine("test.exe", 0)
	var out bytes.Buffer
	r := &REPL{Machine: m, Out: &out}

	assert(t, cmdHelp(r, nil) == nil, "help failed")
	assert(t, out.Len() > 0, "help should print something")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert(t, len(lines) == len(commands), "help printed %d lines, want one per command (%d)", len(lines), len(commands))
	seen := make(map[string]bool)
	for _, line := range lines {
		assert(t, !seen[line], "help line %q printed more than once", line)
		seen[line] = true
	}
}
