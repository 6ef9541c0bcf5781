package entropy

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/safing/cfrand/log"
	"github.com/safing/cfrand/seed"
)

// Source holds the seed of a generator and the reader local entropy is drawn
// from. The seed is never changed after construction.
//
// A Source has no locking of its own. Concurrent calls to LocalEntropy are
// only safe if the local reader is safe for concurrent use, which holds for
// crypto/rand.Reader and the FortunaReader.
type Source struct {
	seed  seed.Seed
	local io.Reader
}

// New fetches the seed with fetcher and returns a Source drawing local entropy
// from local. If local is nil, crypto/rand.Reader is used. The seed is fetched
// exactly once; a failure is returned as an error wrapping seed.ErrSeed and no
// Source is created.
func New(ctx context.Context, fetcher seed.Fetcher, local io.Reader) (*Source, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: no seed fetcher", seed.ErrSeed)
	}

	s, err := fetcher.FetchSeed(ctx)
	if err != nil {
		if !errors.Is(err, seed.ErrSeed) {
			err = fmt.Errorf("%w: %w", seed.ErrSeed, err)
		}
		return nil, err
	}

	return NewWithSeed(s, local), nil
}

// NewWithSeed returns a Source with a seed that was acquired elsewhere. If
// local is nil, crypto/rand.Reader is used.
func NewWithSeed(s seed.Seed, local io.Reader) *Source {
	if local == nil {
		local = rand.Reader
	}
	return &Source{
		seed:  s,
		local: local,
	}
}

// FromConfig sets up the local reader and the seed fetcher from the current
// configuration and fetches the seed.
func FromConfig(ctx context.Context) (*Source, error) {
	local, err := LocalReaderFromConfig()
	if err != nil {
		return nil, err
	}

	src, err := New(ctx, seed.FetcherFromConfig(), local)
	if err != nil {
		if closer, ok := local.(io.Closer); ok {
			if closeErr := closer.Close(); closeErr != nil {
				log.Warningf("entropy: failed to close local reader: %s", closeErr)
			}
		}
		return nil, err
	}

	return src, nil
}

// Seed returns the seed.
func (s *Source) Seed() seed.Seed {
	return s.seed
}

// LocalEntropy returns n fresh bytes from the local reader.
func (s *Source) LocalEntropy(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("entropy: invalid length %d", n)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(s.local, b); err != nil {
		return nil, fmt.Errorf("entropy: failed to read local entropy: %w", err)
	}
	return b, nil
}

// Close releases the local reader, if it needs releasing.
func (s *Source) Close() error {
	if closer, ok := s.local.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
