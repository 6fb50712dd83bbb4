// Package listing parses the assembler's .lst output back into a symbol
// table and per-address line index, for the debugger's "info"/disassembly
// commands and for keeping the displayed hex bytes in sync with memory the
// program writes at runtime.
package listing

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	labelHeaderRe = regexp.MustCompile(`^<([A-Za-z_][A-Za-z0-9_]*)>:$`)
	addrLineRe    = regexp.MustCompile(`^([0-9a-fA-F]+):\s+([0-9a-fA-F]{2}) ([0-9a-fA-F]{2}) ([0-9a-fA-F]{2}) ([0-9a-fA-F]{2})(\s*)(.*)$`)
)

// Listing is a mutable, line-oriented view of an assembled program's
// listing file.
type Listing struct {
	lines []string

	// addrToLine maps a byte address to its index into lines.
	addrToLine map[uint32]int
	// Symbols maps label name to byte address.
	Symbols map[string]uint32
	// sortedSymbolAddrs caches Symbols' addresses in ascending order for
	// nearest-symbol lookups.
	sortedSymbolAddrs []uint32
	addrToSymbol      map[uint32]string
}

// Parse builds a Listing from the text of a .lst file.
func Parse(text string) (*Listing, error) {
	l := &Listing{
		lines:        strings.Split(text, "\n"),
		addrToLine:   make(map[uint32]int),
		Symbols:      make(map[string]uint32),
		addrToSymbol: make(map[uint32]string),
	}

	var pendingLabels []string
	for i, line := range l.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := labelHeaderRe.FindStringSubmatch(trimmed); m != nil {
			pendingLabels = append(pendingLabels, m[1])
			continue
		}
		if m := addrLineRe.FindStringSubmatch(trimmed); m != nil {
			addr64, err := strconv.ParseUint(m[1], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("listing line %d: invalid address '%s'", i+1, m[1])
			}
			addr := uint32(addr64)
			l.addrToLine[addr] = i
			for _, name := range pendingLabels {
				l.Symbols[name] = addr
				l.addrToSymbol[addr] = name
			}
			pendingLabels = nil
		}
	}

	l.sortedSymbolAddrs = make([]uint32, 0, len(l.Symbols))
	for _, a := range l.Symbols {
		l.sortedSymbolAddrs = append(l.sortedSymbolAddrs, a)
	}
	sort.Slice(l.sortedSymbolAddrs, func(i, j int) bool { return l.sortedSymbolAddrs[i] < l.sortedSymbolAddrs[j] })

	return l, nil
}

// String renders the current (possibly Update-d) listing back to text.
func (l *Listing) String() string {
	return strings.Join(l.lines, "\n")
}

// LineFor returns the raw listing line text for addr, if any.
func (l *Listing) LineFor(addr uint32) (string, bool) {
	idx, ok := l.addrToLine[addr]
	if !ok {
		return "", false
	}
	return l.lines[idx], true
}

// DisassembleNear returns the nearest symbol at or before addr, and the
// byte offset from it; ok is false if no symbol precedes addr at all.
func (l *Listing) DisassembleNear(addr uint32) (name string, offset uint32, ok bool) {
	if len(l.sortedSymbolAddrs) == 0 {
		return "", 0, false
	}
	i := sort.Search(len(l.sortedSymbolAddrs), func(i int) bool {
		return l.sortedSymbolAddrs[i] > addr
	})
	if i == 0 {
		return "", 0, false
	}
	symAddr := l.sortedSymbolAddrs[i-1]
	return l.addrToSymbol[symAddr], addr - symAddr, true
}

// Update rewrites the hex byte columns of addr's listing line to reflect a
// value the running program just wrote there. It is a no-op for addresses
// outside the original listing (e.g. stack or heap memory).
func (l *Listing) Update(addr uint32, word uint32) {
	idx, ok := l.addrToLine[addr]
	if !ok {
		return
	}
	m := addrLineRe.FindStringSubmatch(strings.TrimSpace(l.lines[idx]))
	if m == nil {
		return
	}
	hex := fmt.Sprintf("%08x", word)
	prefix := l.lines[idx][:strings.Index(l.lines[idx], m[1]+":")+len(m[1])+1]
	rest := m[6] + m[7]
	l.lines[idx] = fmt.Sprintf("%s %s %s %s %s%s", prefix, hex[0:2], hex[2:4], hex[4:6], hex[6:8], rest)
}
