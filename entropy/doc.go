// Package entropy provides the EntropySource of a generator: the seed
// acquired once from the seed source, and local entropy drawn on demand.
//
// Local entropy comes from the OS RNG (crypto/rand) by default. Alternatively
// a fortuna CSPRNG (github.com/seehuhn/fortuna) can be used, which is fed by
// two sources:
// - OS RNG
// - Entropy gathered by context switching
package entropy
