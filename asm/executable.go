package asm

import (
	"fmt"
	"sort"
	"strings"
)

// Encoded is the decomposed view of one 32-bit instruction word, still
// carrying its fields separately so the immediate can be patched in during
// pass 2 without re-parsing the source.
type Encoded struct {
	Type uint8
	Op   uint8
	Rd   uint8
	Rs1  uint8
	Rs2  uint8 // only meaningful for Type==1
	Imm  int32 // meaningful for Type in {2,3,4,5}
}

// Word returns the final 32-bit encoding.
func (e Encoded) Word() uint32 {
	v := uint32(e.Type)<<28 | uint32(e.Op)<<24 | uint32(e.Rd)<<20 | uint32(e.Rs1)<<16
	if e.Type == 1 {
		v |= uint32(e.Rs2) << 12
	} else {
		v |= uint32(uint16(e.Imm))
	}
	return v
}

// Entry is one emitted 32-bit cell: either a raw literal word (from .word),
// or an instruction encoding that may still carry a deferred symbolic
// target to be patched in pass 2.
type Entry struct {
	LineNum int
	Pseudo  bool // a generated sub-instruction of a pseudo-op; blank source in listing

	IsRaw    bool
	RawValue uint32

	Enc Encoded

	// Target, when non-empty, names the label this entry's Enc.Imm must be
	// resolved against during pass 2. ExtraOffset is added to the
	// label-distance *after* the 16-bit range check (documented leniency,
	// see DESIGN.md open question (i)).
	Target      string
	ExtraOffset int32
}

// Resolve fills in Enc.Imm for deferred entries. No-op if the entry has no
// symbolic target.
func (e *Entry) Resolve(symbols map[string]uint32, ownerAddr uint32) error {
	if e.Target == "" {
		return nil
	}
	targetAddr, ok := symbols[e.Target]
	if !ok {
		return fmt.Errorf("cannot resolve symbol: '%s'", e.Target)
	}
	if e.IsRaw {
		e.RawValue = uint32(int64(targetAddr) + int64(e.ExtraOffset))
		return nil
	}

	offset := int64(targetAddr) - int64(ownerAddr)
	if offset < -(1<<15) || offset >= (1<<15) {
		return fmt.Errorf("distance from 0x%x to '%s' at 0x%x does not fit on 16-bits", ownerAddr, e.Target, targetAddr)
	}
	e.Enc.Imm = int32(offset) + e.ExtraOffset
	return nil
}

// Encode returns the final 32-bit word. Resolve must have been called first
// for deferred entries.
func (e *Entry) Encode() uint32 {
	if e.IsRaw {
		return e.RawValue
	}
	return e.Enc.Word()
}

// Executable is the address-indexed program under construction: a map from
// byte address to emitted entry, plus the symbol table and emission cursor.
type Executable struct {
	Contents map[uint32]*Entry
	CurAddr  uint32
	Symbols  map[string]uint32

	// Source lines, 1-indexed (index 0 unused), used for listing/diagnostics.
	Lines []string
}

// NewExecutable returns an empty executable ready for pass-1 emission.
func NewExecutable(lines []string) *Executable {
	return &Executable{
		Contents: make(map[uint32]*Entry),
		Symbols:  make(map[string]uint32),
		Lines:    lines,
	}
}

// Add appends entry at the current cursor and advances the cursor by 4 bytes.
func (ex *Executable) Add(entry *Entry) error {
	addr := ex.CurAddr
	if _, exists := ex.Contents[addr]; exists {
		return fmt.Errorf("internal error: duplicate address %d in program", addr)
	}
	ex.Contents[addr] = entry
	ex.CurAddr += 4
	return nil
}

// AddLabel records name -> current cursor. Fails if name is already defined.
func (ex *Executable) AddLabel(name string) error {
	if _, exists := ex.Symbols[name]; exists {
		return fmt.Errorf("label '%s' is already defined", name)
	}
	ex.Symbols[name] = ex.CurAddr
	return nil
}

// ResolveAll runs pass 2: patches every deferred entry's immediate field.
// Entries are resolved in address order for deterministic error messages.
func (ex *Executable) ResolveAll() error {
	for _, addr := range ex.sortedAddrs() {
		entry := ex.Contents[addr]
		if err := entry.Resolve(ex.Symbols, addr); err != nil {
			return err
		}
	}
	return nil
}

func (ex *Executable) sortedAddrs() []uint32 {
	addrs := make([]uint32, 0, len(ex.Contents))
	for a := range ex.Contents {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// addrWidth returns an even hex-digit width wide enough for the highest address.
func (ex *Executable) addrWidth() int {
	maxAddr := uint32(0)
	for a := range ex.Contents {
		if a > maxAddr {
			maxAddr = a
		}
	}
	width := len(fmt.Sprintf("%x", maxAddr))
	return 2 * ((width-1)/2 + 1)
}

// EncodeExe renders the .exe format: one line per word, addresses shown
// explicitly unless the image is a contiguous run starting at zero.
func (ex *Executable) EncodeExe() string {
	addrs := ex.sortedAddrs()
	if len(addrs) == 0 {
		return ""
	}

	contiguous := addrs[0] == 0
	if contiguous {
		for i, a := range addrs {
			if a != uint32(i)*4 {
				contiguous = false
				break
			}
		}
	}

	var b strings.Builder
	width := ex.addrWidth()
	for _, a := range addrs {
		if !contiguous {
			fmt.Fprintf(&b, "%0*x: ", width, a)
		}
		fmt.Fprintf(&b, "%08x\n", ex.Contents[a].Encode())
	}
	return strings.TrimRight(b.String(), "\n")
}

// labelsAt returns the sorted label names defined at addr.
func (ex *Executable) labelsAt(addr uint32) []string {
	var names []string
	for name, a := range ex.Symbols {
		if a == addr {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// EncodeListing renders the .lst format: label headers, then
// "<addr>: aa bb cc dd    <source>" per entry, blank source for pseudo sub-words.
func (ex *Executable) EncodeListing() string {
	labelWidth := 0
	for name := range ex.Symbols {
		if len(name) > labelWidth {
			labelWidth = len(name)
		}
	}
	if w := ex.addrWidth() - 2; w > labelWidth {
		labelWidth = w
	}

	var b strings.Builder
	for _, addr := range ex.sortedAddrs() {
		for _, name := range ex.labelsAt(addr) {
			fmt.Fprintf(&b, "%s\n", rightJustify(fmt.Sprintf("<%s>:", name), labelWidth+3))
		}

		entry := ex.Contents[addr]
		prefix := rightJustify(fmt.Sprintf("%0*x: ", ex.addrWidth(), addr), labelWidth+4)
		word := entry.Encode()
		hex := fmt.Sprintf("%08x", word)
		b.WriteString(prefix)
		fmt.Fprintf(&b, "%s %s %s %s    ", hex[0:2], hex[2:4], hex[4:6], hex[6:8])

		if !entry.Pseudo && entry.LineNum > 0 && entry.LineNum < len(ex.Lines) {
			b.WriteString(sourceWithoutComment(ex.Lines[entry.LineNum]))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func rightJustify(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func sourceWithoutComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
