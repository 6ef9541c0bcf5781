// Package seed acquires the remote seed material that is mixed into local
// entropy.
//
// The seed source answers with a JSON object holding a SHA3-512 digest in hex:
//
//	{"hash_sha3_512": "<128 hex characters>"}
//
// Anything else is rejected with an error wrapping ErrSeed.
package seed

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/safing/cfrand/utils"
)

// Size is the length of a seed in bytes.
const Size = 64

// DigestField is the name of the JSON field holding the hex encoded digest.
const DigestField = "hash_sha3_512"

// ErrSeed is wrapped by all errors concerning seed acquisition: the source is
// unreachable or misconfigured, or it returned malformed data.
var ErrSeed = errors.New("seed unavailable")

// Seed is the immutable seed material of a generator.
type Seed [Size]byte

// String returns a short fingerprint of the seed, suitable for logging.
func (s Seed) String() string {
	return utils.SafeFingerprint(s[:], 4)
}

// Fetcher acquires a seed.
type Fetcher interface {
	FetchSeed(ctx context.Context) (Seed, error)
}

// FetcherFunc is an adapter to use ordinary functions as a Fetcher.
type FetcherFunc func(ctx context.Context) (Seed, error)

// FetchSeed calls f(ctx).
func (f FetcherFunc) FetchSeed(ctx context.Context) (Seed, error) {
	return f(ctx)
}

// Static returns a Fetcher that always returns s.
func Static(s Seed) Fetcher {
	return FetcherFunc(func(context.Context) (Seed, error) {
		return s, nil
	})
}

// Decode decodes a hex encoded digest into a Seed.
func Decode(hexDigest string) (Seed, error) {
	var s Seed

	raw, err := hex.DecodeString(hexDigest)
	if err != nil {
		return s, fmt.Errorf("%w: digest is not valid hex: %s", ErrSeed, err)
	}
	if len(raw) != Size {
		return s, fmt.Errorf("%w: digest is %d bits instead of %d", ErrSeed, len(raw)*8, Size*8)
	}

	copy(s[:], raw)
	return s, nil
}

// Parse extracts the seed from a seed source response body.
func Parse(body []byte) (Seed, error) {
	if !gjson.ValidBytes(body) {
		return Seed{}, fmt.Errorf("%w: response is not valid json: %s", ErrSeed, utils.SafeFirst16Bytes(body))
	}

	result := gjson.GetBytes(body, DigestField)
	if !result.Exists() || result.Type != gjson.String || result.Str == "" {
		return Seed{}, fmt.Errorf("%w: response is missing %s", ErrSeed, DigestField)
	}

	return Decode(result.Str)
}
