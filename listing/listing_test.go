package listing

import (
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

const sampleListing = `  <start>:
00000000: 20 11 00 05    addi r1, r1, 5
    <loop>:
00000004: 30 11 00 04    beq r1, r1, loop
00000008: 50 0e 00 04    jal lr, loop
`

func TestParseFindsSymbolsAndLines(t *testing.T) {
	l, err := Parse(sampleListing)
	assert(t, err == nil, "unexpected parse error: %v", err)
	assert(t, l.Symbols["start"] == 0, "start = %d, want 0", l.Symbols["start"])
	assert(t, l.Symbols["loop"] == 4, "loop = %d, want 4", l.Symbols["loop"])

	line, ok := l.LineFor(8)
	assert(t, ok, "expected a line for address 8")
	assert(t, strings.Contains(line, "jal"), "line %q should contain 'jal'", line)
}

func TestDisassembleNearestSymbol(t *testing.T) {
	l, err := Parse(sampleListing)
	assert(t, err == nil, "unexpected parse error: %v", err)

	name, off, ok := l.DisassembleNear(8)
	assert(t, ok && name == "loop" && off == 4, "got name=%s off=%d ok=%v", name, off, ok)

	_, _, ok = l.DisassembleNear(1000)
	assert(t, ok, "address past every instruction should still resolve to the last symbol")
}

func TestUpdateRewritesHexColumns(t *testing.T) {
	l, err := Parse(sampleListing)
	assert(t, err == nil, "unexpected parse error: %v", err)

	l.Update(0, 0xCAFEBABE)
	line, ok := l.LineFor(0)
	assert(t, ok, "expected a line for address 0")
	assert(t, strings.Contains(line, "ca fe ba be"), "line %q should show the updated bytes", line)
	assert(t, strings.Contains(line, "addi r1, r1, 5"), "source text should be preserved: %q", line)
}
