package random

import (
	"fmt"
	"math/rand"
)

type source struct {
	g *Generator
}

// NewSource returns a math/rand source backed by g, so that it can drive a
// *rand.Rand. As the math/rand interface has no error returns, the source
// panics if g fails to produce entropy. The source must not be seeded and is
// not safe for concurrent use.
func NewSource(g *Generator) rand.Source64 {
	return source{g: g}
}

func (s source) Int63() int64 {
	return int64(s.bits(63))
}

func (s source) Uint64() uint64 {
	return s.bits(64)
}

// Seed does nothing, the seed is fixed at construction of the generator.
func (s source) Seed(int64) {}

func (s source) bits(k int) uint64 {
	v, err := s.g.randBitsUint64(k)
	if err != nil {
		panic(fmt.Sprintf("random: source failed: %s", err))
	}
	return v
}
