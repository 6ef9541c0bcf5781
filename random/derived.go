package random

import (
	"fmt"
	"math"
	"math/big"
)

// twoTo64 is the number of values of the full int64 range.
var twoTo64 = new(big.Int).Lsh(big.NewInt(1), 64)

// Random returns a float64 in [0.0, 1.0) with 53 bits of randomness.
func (g *Generator) Random() (float64, error) {
	v, err := g.randBitsUint64(53)
	if err != nil {
		return 0, err
	}
	return float64(v) / (1 << 53), nil
}

// Uniform returns a random float64 N with a <= N <= b, or b <= N <= a if b < a.
// The upper end may be included depending on rounding of a + (b-a) * Random().
func (g *Generator) Uniform(a, b float64) (float64, error) {
	r, err := g.Random()
	if err != nil {
		return 0, err
	}
	return a + (b-a)*r, nil
}

// RandRange returns a random element of the arithmetic sequence start,
// start+step, ... that stops before stop. It fails with ErrRange if step is
// zero or the sequence is empty.
func (g *Generator) RandRange(start, stop, step int64) (int64, error) {
	if step == 0 {
		return 0, fmt.Errorf("%w: zero step for randrange(%d, %d, %d)", ErrRange, start, stop, step)
	}

	count := rangeCount(start, stop, step)
	if count == 0 {
		return 0, fmt.Errorf("%w: empty randrange(%d, %d, %d)", ErrRange, start, stop, step)
	}

	index, err := g.randBelowUint64(count)
	if err != nil {
		return 0, err
	}
	// Wrapping arithmetic yields the exact element, as it lies in int64.
	return int64(uint64(start) + index*uint64(step)), nil
}

// RandRangeN returns a random integer in [0, stop).
func (g *Generator) RandRangeN(stop int64) (int64, error) {
	return g.RandRange(0, stop, 1)
}

// RandInt returns a random integer N with a <= N <= b.
// It fails with ErrRange if a > b.
func (g *Generator) RandInt(a, b int64) (int64, error) {
	if a > b {
		return 0, fmt.Errorf("%w: randint(%d, %d)", ErrRange, a, b)
	}

	width := uint64(b) - uint64(a)
	if width == math.MaxUint64 {
		// 2^64 values do not fit uint64.
		index, err := g.RandBelowBig(twoTo64)
		if err != nil {
			return 0, err
		}
		return int64(uint64(a) + index.Uint64()), nil
	}

	index, err := g.randBelowUint64(width + 1)
	if err != nil {
		return 0, err
	}
	return int64(uint64(a) + index), nil
}

// Shuffle randomizes the order of n elements using swap, which swaps the
// elements with indexes i and j. It is a Fisher-Yates shuffle from the last
// index down, so every permutation is equally likely. On error, the elements
// may be partially shuffled.
func (g *Generator) Shuffle(n int, swap func(i, j int)) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrDomain, n)
	}

	for i := n - 1; i > 0; i-- {
		j, err := g.randBelowUint64(uint64(i) + 1)
		if err != nil {
			return err
		}
		swap(i, int(j))
	}
	return nil
}

// ChoiceWith returns a random element of seq using g.
// It fails with ErrEmptyInput if seq is empty.
func ChoiceWith[T any](g *Generator, seq []T) (T, error) {
	var zero T
	if len(seq) == 0 {
		return zero, ErrEmptyInput
	}

	index, err := g.randBelowUint64(uint64(len(seq)))
	if err != nil {
		return zero, err
	}
	return seq[index], nil
}

// ShuffleWith shuffles seq in place using g.
func ShuffleWith[T any](g *Generator, seq []T) error {
	return g.Shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})
}

// rangeCount returns the number of elements of the sequence start, start+step,
// ... before stop. The result always fits uint64, as the distance between two
// int64 values does.
func rangeCount(start, stop, step int64) uint64 {
	switch {
	case step > 0 && start < stop:
		return (uint64(stop)-uint64(start)-1)/uint64(step) + 1
	case step < 0 && start > stop:
		magnitude := -uint64(step)
		return (uint64(start)-uint64(stop)-1)/magnitude + 1
	default:
		return 0
	}
}
