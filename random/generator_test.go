package random

import (
	"bytes"
	"context"
	"encoding/hex"
	"math"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/cfrand/entropy"
	"github.com/safing/cfrand/seed"
	"github.com/safing/cfrand/seed/seedtest"
)

var testSeed = seedtest.Digest([]byte("cfrand"))

// countingReader yields the bytes 0, 1, 2, ... 255, 0, 1, ...
type countingReader struct {
	pos int
}

func (r *countingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.pos)
		r.pos++
	}
	return len(p), nil
}

func newDeterministic() *Generator {
	return NewFromSource(entropy.NewWithSeed(testSeed, &countingReader{}))
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	g, err := New(context.Background(), seed.Static(testSeed), nil)
	require.NoError(t, err)
	return g
}

func TestSeedVector(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"e81aec359ae8f1368a9fa87ff158429900988218e1ccfaed78bf8f84d858059f"+
			"7425eaede3cc033a5072633ad95731f9959dd966efe02b43062ecbc43a8dcd11",
		hex.EncodeToString(testSeed[:]),
	)
}

func TestRandomBytes(t *testing.T) {
	t.Parallel()

	// first block is the seed XORed with 0, 1, 2, ...
	b, err := newDeterministic().RandomBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{232, 27, 238}, b)

	// the second block continues at local offset 64
	b, err = newDeterministic().RandomBytes(70)
	require.NoError(t, err)
	assert.Len(t, b, 70)
	assert.Equal(t, "f32ea85bae76dead", hex.EncodeToString(b[62:70]))

	// zero length draws no entropy
	g := NewFromSource(entropy.NewWithSeed(testSeed, bytes.NewReader(nil)))
	b, err = g.RandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = g.RandomBytes(-1)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestRead(t *testing.T) {
	t.Parallel()

	want, err := newDeterministic().RandomBytes(150)
	require.NoError(t, err)

	got := make([]byte, 150)
	n, err := newDeterministic().Read(got)
	require.NoError(t, err)
	assert.Equal(t, 150, n)
	assert.Equal(t, want, got)
}

func TestRandBits(t *testing.T) {
	t.Parallel()

	v, err := newDeterministic().RandBits(12)
	require.NoError(t, err)
	assert.Equal(t, int64(3713), v.Int64())

	g := newDeterministic()
	_, err = g.RandBits(12)
	require.NoError(t, err)
	v, err = g.RandBits(70)
	require.NoError(t, err)
	want, ok := new(big.Int).SetString("776414838196343266416", 10)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(v), "got %s", v)

	v, err = newDeterministic().RandBits(0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	_, err = newDeterministic().RandBits(-1)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestRandBitsFastPath(t *testing.T) {
	t.Parallel()

	for k := 0; k <= 64; k++ {
		wide, err := newDeterministic().RandBits(k)
		require.NoError(t, err)
		narrow, err := newDeterministic().randBitsUint64(k)
		require.NoError(t, err)
		assert.Equal(t, wide.Uint64(), narrow, "k=%d", k)
		assert.LessOrEqual(t, wide.BitLen(), k)
	}

	_, err := newDeterministic().randBitsUint64(65)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestRandBelow(t *testing.T) {
	t.Parallel()

	g := newDeterministic()
	got := make([]int64, 0, 8)
	for i := 0; i < 8; i++ {
		v, err := g.RandBelow(10)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int64{6, 2, 6, 2, 6, 2, 6, 2}, got)

	v, err := g.RandBelow(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	_, err = g.RandBelow(0)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = g.RandBelow(-5)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = g.RandBelowBig(nil)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = g.RandBelowBig(big.NewInt(0))
	assert.ErrorIs(t, err, ErrDomain)

	// big and small bounds agree
	for _, upper := range []int64{1, 2, 3, 10, 255, 256, 1000, math.MaxInt64} {
		a, err := newDeterministic().RandBelow(upper)
		require.NoError(t, err)
		b, err := newDeterministic().RandBelowBig(big.NewInt(upper))
		require.NoError(t, err)
		assert.Equal(t, a, b.Int64(), "upper=%d", upper)
	}
}

func TestLocalEntropyFailure(t *testing.T) {
	t.Parallel()

	g := NewFromSource(entropy.NewWithSeed(testSeed, bytes.NewReader(make([]byte, 100))))
	_, err := g.RandBits(8)
	require.NoError(t, err)

	// only 36 bytes left for a 64 byte block
	_, err = g.RandBits(8)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSeed)
}

func TestNewSeedFailure(t *testing.T) {
	t.Parallel()

	srv := seedtest.NewServer([]byte("failure"))
	defer srv.Close()
	srv.SetStatus(http.StatusServiceUnavailable)

	_, err := New(context.Background(), seed.NewHTTPFetcher(srv.SeedURL()), nil)
	assert.ErrorIs(t, err, ErrSeed)
	assert.Equal(t, 1, srv.Requests())
}

func TestOneFetchPerGenerator(t *testing.T) {
	t.Parallel()

	srv := seedtest.NewServer([]byte("one fetch"))
	defer srv.Close()

	g, err := New(context.Background(), seed.NewHTTPFetcher(srv.SeedURL()), nil)
	require.NoError(t, err)
	defer g.Close() //nolint:errcheck

	for i := 0; i < 100; i++ {
		_, err := g.RandInt(1, 6)
		require.NoError(t, err)
	}
	_, err = g.RandomBytes(1000)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Requests())
	assert.Equal(t, []string{seed.DefaultUserAgent}, srv.UserAgents())
}
