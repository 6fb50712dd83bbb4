package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadExe parses the .exe text format written by EncodeExe: either a
// contiguous run of "aabbccdd" lines starting at address 0, or explicit
// "addr: aabbccdd" lines. Returns the words keyed by byte address.
func LoadExe(text string) (map[uint32]uint32, error) {
	words := make(map[uint32]uint32)
	addr := uint32(0)
	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var hexWord string
		if i := strings.Index(line, ":"); i >= 0 {
			a, err := strconv.ParseUint(strings.TrimSpace(line[:i]), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid address '%s'", lineNum+1, line[:i])
			}
			addr = uint32(a)
			hexWord = strings.TrimSpace(line[i+1:])
		} else {
			hexWord = line
		}
		v, err := strconv.ParseUint(hexWord, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid word '%s'", lineNum+1, hexWord)
		}
		words[addr] = uint32(v)
		addr += 4
	}
	return words, nil
}
