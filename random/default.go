package random

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/safing/cfrand/config"
	"github.com/safing/cfrand/log"
)

var (
	defaultGenerator atomic.Pointer[Generator]
	defaultGroup     singleflight.Group

	// Reader is a global, shared instance of the default generator.
	Reader io.Reader = reader{}
)

// Default returns the process-wide generator. It is constructed on first use
// from the environment and the .env file, which are read again on every
// attempt. The .env file is looked up in the working directory and then its
// parent, not next to the binary; variables already set in the environment
// win. Failures are not cached: a later call retries the fetch, and a
// variable removed since the last attempt is no longer used.
// Concurrent first calls share a single construction.
func Default() (*Generator, error) {
	if g := defaultGenerator.Load(); g != nil {
		return g, nil
	}

	v, err, _ := defaultGroup.Do("default", func() (interface{}, error) {
		if g := defaultGenerator.Load(); g != nil {
			return g, nil
		}

		if err := config.LoadEnvironment(config.DotEnvCandidates()...); err != nil {
			return nil, fmt.Errorf("random: failed to load configuration: %w", err)
		}

		g, err := NewFromConfig(context.Background())
		if err != nil {
			log.Warningf("random: failed to create default generator: %s", err)
			return nil, err
		}

		defaultGenerator.Store(g)
		log.Infof("random: default generator ready with seed %s", g.src.Seed())
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Generator), nil //nolint:forcetypeassert // only *Generator is returned
}

// SetDefault replaces the process-wide generator. Passing nil makes the next
// use construct a new one. The previous generator is not closed.
func SetDefault(g *Generator) {
	defaultGenerator.Store(g)
}

// Random returns a float64 in [0.0, 1.0) from the default generator.
func Random() (float64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.Random()
}

// Uniform returns a random float64 between a and b from the default generator.
func Uniform(a, b float64) (float64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.Uniform(a, b)
}

// RandRange returns a random element of range(start, stop, step) from the
// default generator.
func RandRange(start, stop, step int64) (int64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.RandRange(start, stop, step)
}

// RandRangeN returns a random integer in [0, stop) from the default generator.
func RandRangeN(stop int64) (int64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.RandRangeN(stop)
}

// RandInt returns a random integer in [a, b] from the default generator.
func RandInt(a, b int64) (int64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.RandInt(a, b)
}

// RandBits returns a random integer in [0, 2^k) from the default generator.
func RandBits(k int) (*big.Int, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.RandBits(k)
}

// RandBelow returns a random integer in [0, upper) from the default generator.
func RandBelow(upper int64) (int64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.RandBelow(upper)
}

// Bytes returns n random bytes from the default generator.
func Bytes(n int) ([]byte, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.RandomBytes(n)
}

// Read fills p with random bytes from the default generator.
func Read(p []byte) (n int, err error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.Read(p)
}

// Choice returns a random element of seq from the default generator.
func Choice[T any](seq []T) (T, error) {
	g, err := Default()
	if err != nil {
		var zero T
		return zero, err
	}
	return ChoiceWith(g, seq)
}

// Shuffle shuffles seq in place with the default generator.
func Shuffle[T any](seq []T) error {
	g, err := Default()
	if err != nil {
		return err
	}
	return ShuffleWith(g, seq)
}

type reader struct{}

func (r reader) Read(p []byte) (n int, err error) {
	return Read(p)
}
