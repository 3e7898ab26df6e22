// Package random provides the deterministic pseudo-random stream that
// drives puzzle generation.
package random

import "unicode/utf16"

// Stream produces a reproducible sequence of floating point values in
// [0, 1) derived from a textual seed.
//
// # Determinism
//
// Two streams built from equal seed strings yield identical value
// sequences, so a seed fully determines every generated puzzle. The
// recurrence is a linear congruential generator over 32-bit state:
//
//	state = (state*1664525 + 1013904223) mod 2^32
//
// seeded with the absolute value of a 32-bit signed fold of the seed
// string. Each draw advances the state once and returns state / 2^32.
//
// The multiplier, increment, modulus, and seed fold are all part of the
// save format: changing any of them silently changes which puzzle a
// stored seed reproduces.
type Stream struct {
	state uint32
}

// NewStream derives a stream from a seed string. Any string is a valid
// seed, including the empty string, which seeds the state with zero.
func NewStream(seed string) *Stream {
	return &Stream{state: hashSeed(seed)}
}

// Next advances the stream and returns the next value in [0, 1).
func (s *Stream) Next() float64 {
	s.state = s.state*1664525 + 1013904223
	return float64(s.state) / (1 << 32)
}

// hashSeed folds the seed into a signed 32-bit accumulator, one UTF-16
// code unit at a time, and returns the absolute value:
//
//	hash = (hash<<5 - hash) + unit
//
// Folding UTF-16 units rather than runes keeps hashes for seeds outside
// the basic plane stable across ports of the generator.
func hashSeed(seed string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash<<5 - hash + int32(unit)
	}
	if hash < 0 {
		return uint32(-int64(hash))
	}
	return uint32(hash)
}
