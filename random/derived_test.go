package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareLimit is the statistic a uniform distribution over df+1 buckets
// stays below with a probability of 99.99%.
func chiSquareLimit(df int) float64 {
	return distuv.ChiSquared{K: float64(df)}.Quantile(0.9999)
}

func chiSquare(counts []int, total int) float64 {
	expected := float64(total) / float64(len(counts))
	var sum float64
	for _, c := range counts {
		d := float64(c) - expected
		sum += d * d / expected
	}
	return sum
}

func TestDerivedVectors(t *testing.T) {
	t.Parallel()

	g := newDeterministic()
	ints := make([]int64, 0, 8)
	for i := 0; i < 8; i++ {
		v, err := g.RandInt(1, 6)
		require.NoError(t, err)
		ints = append(ints, v)
	}
	assert.Equal(t, []int64{6, 4, 2, 6, 4, 2, 6, 4}, ints)

	g = newDeterministic()
	f, err := g.Random()
	require.NoError(t, err)
	assert.Equal(t, 0.9066761859275443, f)
	f, err = g.Random()
	require.NoError(t, err)
	assert.Equal(t, 0.6576489486894193, f)

	g = newDeterministic()
	ranged := make([]int64, 0, 8)
	for i := 0; i < 5; i++ {
		v, err := g.RandRange(10, 100, 5)
		require.NoError(t, err)
		ranged = append(ranged, v)
	}
	for i := 0; i < 3; i++ {
		v, err := g.RandRange(100, 10, -7)
		require.NoError(t, err)
		ranged = append(ranged, v)
	}
	assert.Equal(t, []int64{75, 35, 75, 35, 75, 86, 30, 58}, ranged)

	seq := []int{0, 1, 2, 3, 4, 5}
	require.NoError(t, ShuffleWith(newDeterministic(), seq))
	assert.Equal(t, []int{0, 4, 2, 1, 3, 5}, seq)

	g = newDeterministic()
	full := make([]int64, 0, 2)
	for i := 0; i < 2; i++ {
		v, err := g.RandInt(math.MinInt64, math.MaxInt64)
		require.NoError(t, err)
		full = append(full, v)
	}
	assert.Equal(t, []int64{5852108222761725794, -3335375202667565086}, full)
}

func TestRangeErrors(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	_, err := g.RandRange(5, 5, 1)
	assert.ErrorIs(t, err, ErrRange)
	_, err = g.RandRange(10, 1, 1)
	assert.ErrorIs(t, err, ErrRange)
	_, err = g.RandRange(1, 10, -1)
	assert.ErrorIs(t, err, ErrRange)
	_, err = g.RandRange(1, 10, 0)
	assert.ErrorIs(t, err, ErrRange)
	_, err = g.RandRangeN(0)
	assert.ErrorIs(t, err, ErrRange)
	_, err = g.RandInt(2, 1)
	assert.ErrorIs(t, err, ErrRange)
	assert.ErrorIs(t, g.Shuffle(-1, func(i, j int) {}), ErrDomain)

	_, err = ChoiceWith(g, []string{})
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = ChoiceWith[int](g, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRangeCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(18), rangeCount(10, 100, 5))
	assert.Equal(t, uint64(13), rangeCount(100, 10, -7))
	assert.Equal(t, uint64(1), rangeCount(5, 6, 1))
	assert.Equal(t, uint64(0), rangeCount(5, 5, 1))
	assert.Equal(t, uint64(math.MaxUint64), rangeCount(math.MinInt64, math.MaxInt64, 1))
	assert.Equal(t, uint64(3), rangeCount(math.MinInt64, math.MaxInt64, math.MaxInt64))
	assert.Equal(t, uint64(2), rangeCount(math.MaxInt64, math.MinInt64, math.MinInt64))
}

func TestRandRange(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	seen := make(map[int64]int)
	for i := 0; i < 2000; i++ {
		v, err := g.RandRange(10, 100, 5)
		require.NoError(t, err)
		require.True(t, v >= 10 && v < 100 && v%5 == 0, "unexpected value %d", v)
		seen[v]++
	}
	assert.Len(t, seen, 18)

	for i := 0; i < 100; i++ {
		v, err := g.RandRange(math.MinInt64, math.MaxInt64, math.MaxInt64)
		require.NoError(t, err)
		assert.Contains(t, []int64{math.MinInt64, -1, math.MaxInt64 - 1}, v)

		v, err = g.RandRange(math.MaxInt64, math.MinInt64, math.MinInt64)
		require.NoError(t, err)
		assert.Contains(t, []int64{math.MaxInt64, -1}, v)

		v, err = g.RandRangeN(3)
		require.NoError(t, err)
		assert.Contains(t, []int64{0, 1, 2}, v)
	}
}

func TestRandInt(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	seen := make(map[int64]bool)
	for i := 0; i < 600; i++ {
		v, err := g.RandInt(1, 6)
		require.NoError(t, err)
		require.True(t, v >= 1 && v <= 6, "unexpected value %d", v)
		seen[v] = true
	}
	assert.True(t, seen[1], "lower end is included")
	assert.True(t, seen[6], "upper end is included")

	v, err := g.RandInt(5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	seen = make(map[int64]bool)
	for i := 0; i < 200; i++ {
		v, err := g.RandInt(math.MaxInt64-1, math.MaxInt64)
		require.NoError(t, err)
		seen[v] = true
		v, err = g.RandInt(math.MinInt64, math.MinInt64+1)
		require.NoError(t, err)
		seen[v] = true
	}
	assert.Equal(t, map[int64]bool{
		math.MaxInt64 - 1: true,
		math.MaxInt64:     true,
		math.MinInt64:     true,
		math.MinInt64 + 1: true,
	}, seen)
}

func TestRandomAndUniform(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	const n = 10000
	var sum float64
	for i := 0; i < n; i++ {
		f, err := g.Random()
		require.NoError(t, err)
		require.True(t, f >= 0 && f < 1, "unexpected value %f", f)
		sum += f
	}
	assert.InDelta(t, 0.5, sum/n, 0.015)

	for i := 0; i < 1000; i++ {
		f, err := g.Uniform(-2.5, 7)
		require.NoError(t, err)
		require.True(t, f >= -2.5 && f <= 7, "unexpected value %f", f)

		f, err = g.Uniform(3, 1)
		require.NoError(t, err)
		require.True(t, f >= 1 && f <= 3, "unexpected value %f", f)
	}

	f, err := g.Uniform(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, f)
}

func TestChoice(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	v, err := ChoiceWith(g, []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, "only", v)

	letters := []rune("abc")
	seen := make(map[rune]bool)
	for i := 0; i < 300; i++ {
		r, err := ChoiceWith(g, letters)
		require.NoError(t, err)
		seen[r] = true
	}
	assert.Len(t, seen, 3)
}

func TestShuffle(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	// empty and single element sequences are fine
	require.NoError(t, ShuffleWith(g, []int{}))
	one := []int{1}
	require.NoError(t, ShuffleWith(g, one))
	assert.Equal(t, []int{1}, one)

	// all 6 permutations of 3 elements are equally likely
	const trials = 6000
	perms := make(map[[3]int]int)
	for i := 0; i < trials; i++ {
		seq := []int{0, 1, 2}
		require.NoError(t, ShuffleWith(g, seq))
		perms[[3]int{seq[0], seq[1], seq[2]}]++
	}
	require.Len(t, perms, 6)

	counts := make([]int, 0, 6)
	for _, c := range perms {
		counts = append(counts, c)
	}
	assert.Less(t, chiSquare(counts, trials), chiSquareLimit(5))

	// the multiset is preserved
	seq := []int{5, 5, 1, 9, 3, 3, 3}
	require.NoError(t, ShuffleWith(g, seq))
	assert.ElementsMatch(t, []int{5, 5, 1, 9, 3, 3, 3}, seq)
}

func TestUniformity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical test in short mode")
	}
	t.Parallel()

	g := newTestGenerator(t)

	t.Run("bits", func(t *testing.T) {
		const n = 10000
		// every bit position is set half of the time, 5 standard deviations
		checkOnes := func(k int, ones []int) {
			for bit, c := range ones {
				assert.InDelta(t, n/2, c, 250, "k=%d bit %d", k, bit)
			}
		}

		// 12 bits drop 4 padding bits, 64 bits span a full word
		for _, k := range []int{1, 8, 12, 64} {
			ones := make([]int, k)
			for i := 0; i < n; i++ {
				v, err := g.randBitsUint64(k)
				require.NoError(t, err)
				for bit := 0; bit < k; bit++ {
					ones[bit] += int(v>>bit) & 1
				}
			}
			checkOnes(k, ones)
		}

		// the big integer path with padding bits across multiple bytes
		const k = 70
		ones := make([]int, k)
		for i := 0; i < n; i++ {
			v, err := g.RandBits(k)
			require.NoError(t, err)
			require.LessOrEqual(t, v.BitLen(), k)
			for bit := 0; bit < k; bit++ {
				ones[bit] += int(v.Bit(bit))
			}
		}
		checkOnes(k, ones)
	})

	t.Run("below", func(t *testing.T) {
		for _, upper := range []int64{3, 10, 17, 64} {
			total := int(upper) * 1000
			counts := make([]int, upper)
			for i := 0; i < total; i++ {
				v, err := g.RandBelow(upper)
				require.NoError(t, err)
				counts[v]++
			}
			assert.Less(t, chiSquare(counts, total), chiSquareLimit(int(upper)-1), "upper=%d", upper)
		}
	})
}
