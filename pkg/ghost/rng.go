package ghost

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// newRNG builds the per-driver RNG spec §5 calls for: one RNG per
// independent search, seeded explicitly when seed is non-nil so that runs
// are reproducible, and otherwise seeded from a cryptographically random
// source so concurrent parallel-restart cores never share a stream.
func newRNG(seed *uint64) *mathrand.Rand {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		var buf [8]byte
		_, _ = cryptorand.Read(buf[:])
		s = binary.LittleEndian.Uint64(buf[:])
	}
	return mathrand.New(mathrand.NewSource(int64(s)))
}
