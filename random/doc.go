// Package random provides a random number generator that mixes a remotely
// fetched seed into local entropy.
//
// Every output is built from 64 byte blocks of local entropy, each XORed with
// the 64 byte seed the generator fetched once at construction. Since XOR with
// a constant is a bijection, the blocks are uniform whenever the local
// entropy is, regardless of the seed.
//
// All operations reduce to extracting k random bits (RandBits) and to unbiased
// rejection sampling below a bound (RandBelow):
//
//	g, err := random.New(ctx, seed.NewHTTPFetcher(url), nil)
//	n, err := g.RandInt(1, 100)
//
// The package level functions use a process-wide generator that is built on
// first use from the configuration (CFRAND_URL, see package config).
package random
