package random

import (
	"errors"

	"github.com/safing/cfrand/seed"
)

// Errors returned by the generator. They are always wrapped with details.
var (
	// ErrSeed is returned if a generator could not be constructed, because the
	// seed source is unreachable, misconfigured or returned malformed data.
	ErrSeed = seed.ErrSeed
	// ErrDomain is returned for non-positive bounds and negative lengths.
	ErrDomain = errors.New("argument out of domain")
	// ErrRange is returned for empty or invalid ranges.
	ErrRange = errors.New("empty or invalid range")
	// ErrEmptyInput is returned when choosing from an empty sequence.
	ErrEmptyInput = errors.New("cannot choose from an empty sequence")
)
