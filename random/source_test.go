package random

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safing/cfrand/entropy"
)

func TestSource(t *testing.T) {
	t.Parallel()

	r := rand.New(NewSource(newTestGenerator(t))) //nolint:gosec // backed by the generator
	for i := 0; i < 100; i++ {
		v := r.Intn(10)
		assert.True(t, v >= 0 && v < 10)
		assert.GreaterOrEqual(t, r.Int63(), int64(0))
	}

	// a fixed stream gives a fixed sequence, seeding has no effect
	a := NewSource(newDeterministic())
	b := NewSource(newDeterministic())
	b.Seed(42)
	assert.Equal(t, a.Uint64(), b.Uint64())

	broken := NewSource(NewFromSource(entropy.NewWithSeed(testSeed, bytes.NewReader(nil))))
	assert.Panics(t, func() { broken.Int63() })
}
