package random

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"math/bits"

	"github.com/safing/cfrand/entropy"
	"github.com/safing/cfrand/log"
	"github.com/safing/cfrand/metrics"
	"github.com/safing/cfrand/seed"
)

// BlockSize is the size of a mixed block, which is the size of the seed.
const BlockSize = seed.Size

var (
	mixedBlocks = metrics.NewCounter("cfrand_mixed_blocks_total")
	rejections  = metrics.NewCounter("cfrand_rejections_total")
)

// Generator produces random values from local entropy mixed with its seed.
//
// A Generator is not safe for concurrent use: callers sharing one must
// serialize access. The seed is read-only after construction, so the only
// shared state is the local entropy reader of the Source.
type Generator struct {
	src *entropy.Source
}

// New fetches the seed with fetcher and returns a generator drawing local
// entropy from local, or from crypto/rand if local is nil. Construction fails
// with an error wrapping ErrSeed if the seed cannot be acquired; ctx bounds
// the fetch.
func New(ctx context.Context, fetcher seed.Fetcher, local io.Reader) (*Generator, error) {
	src, err := entropy.New(ctx, fetcher, local)
	if err != nil {
		return nil, err
	}
	return NewFromSource(src), nil
}

// NewFromSource returns a generator using an existing entropy source. The
// generator takes ownership of src.
func NewFromSource(src *entropy.Source) *Generator {
	return &Generator{src: src}
}

// NewFromConfig returns a generator set up from the current configuration.
func NewFromConfig(ctx context.Context) (*Generator, error) {
	src, err := entropy.FromConfig(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf("random: created generator with seed %s", src.Seed())
	return NewFromSource(src), nil
}

// Close releases the local entropy reader.
func (g *Generator) Close() error {
	return g.src.Close()
}

// mixedBlock returns fresh local entropy XORed with the seed.
func (g *Generator) mixedBlock() ([]byte, error) {
	block, err := g.src.LocalEntropy(BlockSize)
	if err != nil {
		return nil, err
	}

	s := g.src.Seed()
	subtle.XORBytes(block, block, s[:])
	mixedBlocks.Inc()

	return block, nil
}

// RandomBytes returns n random bytes. The bytes are taken from consecutive
// mixed blocks, the rest of the last block is discarded.
func (g *Generator) RandomBytes(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative length %d", ErrDomain, n)
	case n == 0:
		return []byte{}, nil
	}

	out := make([]byte, 0, (n+BlockSize-1)/BlockSize*BlockSize)
	for len(out) < n {
		block, err := g.mixedBlock()
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}

	return out[:n:n], nil
}

// Read fills p with random bytes. It implements io.Reader.
func (g *Generator) Read(p []byte) (n int, err error) {
	for n < len(p) {
		block, err := g.mixedBlock()
		if err != nil {
			return n, err
		}
		n += copy(p[n:], block)
	}
	return n, nil
}

// RandBits returns a uniformly distributed integer in [0, 2^k).
//
// The value is made of ceil(k/8) random bytes read as a big-endian integer,
// shifted right to drop the low-order excess bits. This convention fixes the
// exact output for a given seed and entropy stream.
func (g *Generator) RandBits(k int) (*big.Int, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: negative bit count %d", ErrDomain, k)
	}

	byteLen := (k + 7) / 8
	data, err := g.RandomBytes(byteLen)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).SetBytes(data)
	if excess := byteLen*8 - k; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v, nil
}

// randBitsUint64 is RandBits for k <= 64.
func (g *Generator) randBitsUint64(k int) (uint64, error) {
	if k < 0 || k > 64 {
		return 0, fmt.Errorf("%w: bit count %d does not fit 64 bits", ErrDomain, k)
	}

	byteLen := (k + 7) / 8
	data, err := g.RandomBytes(byteLen)
	if err != nil {
		return 0, err
	}

	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v >> uint(byteLen*8-k), nil
}

// RandBelow returns a uniformly distributed integer in [0, upper).
// It fails with ErrDomain if upper <= 0.
func (g *Generator) RandBelow(upper int64) (int64, error) {
	if upper <= 0 {
		return 0, fmt.Errorf("%w: upper bound must be positive, got %d", ErrDomain, upper)
	}

	v, err := g.randBelowUint64(uint64(upper))
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// randBelowUint64 samples [0, upper) by drawing bits.Len64(upper) bits until
// the value is below upper. As upper >= 2^(bits-1), every draw is accepted
// with a probability above 1/2: less than two draws are needed on average and
// needing more than n draws has a probability below 2^-n. The loop has no
// hard cap, as any cap would bias the result.
func (g *Generator) randBelowUint64(upper uint64) (uint64, error) {
	if upper == 0 {
		return 0, fmt.Errorf("%w: upper bound must be positive", ErrDomain)
	}

	bitSize := bits.Len64(upper)
	for {
		candidate, err := g.randBitsUint64(bitSize)
		if err != nil {
			return 0, err
		}
		if candidate < upper {
			return candidate, nil
		}
		rejections.Inc()
	}
}

// RandBelowBig returns a uniformly distributed integer in [0, upper) for
// bounds of any size. It terminates like RandBelow.
func (g *Generator) RandBelowBig(upper *big.Int) (*big.Int, error) {
	if upper == nil || upper.Sign() <= 0 {
		return nil, fmt.Errorf("%w: upper bound must be positive, got %v", ErrDomain, upper)
	}

	bitSize := upper.BitLen()
	for {
		candidate, err := g.RandBits(bitSize)
		if err != nil {
			return nil, err
		}
		if candidate.Cmp(upper) < 0 {
			return candidate, nil
		}
		rejections.Inc()
	}
}
