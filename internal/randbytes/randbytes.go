// Package randbytes provides a deterministic byte generator for
// uninitialized RAM reads: the same executable path always yields the same
// sequence of "garbage" bytes, so a debugging session is reproducible
// without having to zero-initialize the whole address space up front.
package randbytes

import (
	"hash/fnv"
	"math/rand"
)

// Source is a deterministic, seekable-by-address byte generator.
type Source struct {
	seed int64
}

// NewSource seeds a Source from path, mirroring the reference simulator's
// random.seed(exefile) so runs against the same executable always see the
// same uninitialized contents.
func NewSource(path string) *Source {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return &Source{seed: int64(h.Sum64())}
}

// Byte returns the deterministic "uninitialized" byte for a given address.
// Each address maps to its own independent rand.Rand derived from the
// source seed, so reads are stable regardless of access order.
func (s *Source) Byte(addr uint32) byte {
	r := rand.New(rand.NewSource(s.seed ^ int64(addr)))
	return byte(r.Intn(256))
}
