package entropy

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"
	"github.com/tevino/abool"

	"github.com/safing/cfrand/log"
)

// Common errors.
var (
	ErrClosed             = errors.New("fortuna reader is closed")
	ErrEntropyUnavailable = errors.New("failed to get new entropy")
)

// FortunaOptions configures a FortunaReader.
type FortunaOptions struct {
	// Cipher is the block cipher of the generator: "aes" or "serpent".
	Cipher string
	// MinFeedEntropy is the amount of entropy, in bits, a feeder gathers before
	// it is fed to the generator.
	MinFeedEntropy int64
	// ReseedAfter is the maximum time between reseeds.
	ReseedAfter time.Duration
	// ReseedAfterBytes is the maximum number of bytes read between reseeds.
	ReseedAfterBytes int64
}

// FortunaReader is an io.Reader backed by a fortuna generator that is
// regularly reseeded from the OS RNG and from goroutine tick timing.
// It is safe for concurrent use.
type FortunaReader struct {
	lock      sync.Mutex
	gen       *fortuna.Generator
	bytesRead int64
	lastFeed  time.Time

	opts FortunaOptions

	feed     chan []byte
	stop     chan struct{}
	stopped  *abool.AtomicBool
	routines sync.WaitGroup
}

func newCipher(name string) (func(key []byte) (cipher.Block, error), error) {
	switch name {
	case "aes", "":
		return aes.NewCipher, nil
	case "serpent":
		return serpent.NewCipher, nil
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
	}
}

// NewFortunaReader creates and seeds a fortuna generator and starts its
// feeders. Close must be called to stop the feeders.
func NewFortunaReader(opts FortunaOptions) (*FortunaReader, error) {
	newBlockCipher, err := newCipher(opts.Cipher)
	if err != nil {
		return nil, err
	}
	if opts.MinFeedEntropy <= 0 {
		opts.MinFeedEntropy = 256
	}
	if opts.ReseedAfter <= 0 {
		opts.ReseedAfter = 360 * time.Second
	}
	if opts.ReseedAfterBytes <= 0 {
		opts.ReseedAfterBytes = 1000000
	}

	// initial seed
	initialSeed := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, initialSeed); err != nil {
		return nil, fmt.Errorf("could not read initial entropy from os: %w", err)
	}

	fr := &FortunaReader{
		gen:      fortuna.NewGenerator(newBlockCipher),
		lastFeed: time.Now(),
		opts:     opts,
		feed:     make(chan []byte),
		stop:     make(chan struct{}),
		stopped:  abool.New(),
	}
	fr.gen.Reseed(initialSeed)

	// random source: OS
	fr.startRoutine(fr.osFeeder)
	// random source: goroutine ticks
	fr.startRoutine(fr.tickFeeder)
	// full feeder
	fr.startRoutine(fr.fullFeeder)

	log.Debugf("entropy: started fortuna reader with %s cipher", opts.Cipher)
	return fr, nil
}

func (fr *FortunaReader) startRoutine(fn func()) {
	fr.routines.Add(1)
	go func() {
		defer fr.routines.Done()
		fn()
	}()
}

// checkEntropy reseeds the generator if too many bytes were read or too much
// time has passed since the last reseed. It must be called with the lock held.
func (fr *FortunaReader) checkEntropy() error {
	if fr.bytesRead <= fr.opts.ReseedAfterBytes &&
		time.Since(fr.lastFeed) <= fr.opts.ReseedAfter {
		return nil
	}

	select {
	case r := <-fr.feed:
		fr.gen.Reseed(r)
		fr.bytesRead = 0
		fr.lastFeed = time.Now()
		return nil
	case <-fr.stop:
		return ErrClosed
	case <-time.After(1 * time.Second):
		return ErrEntropyUnavailable
	}
}

// Read fills b with random data.
func (fr *FortunaReader) Read(b []byte) (n int, err error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if fr.stopped.IsSet() {
		return 0, ErrClosed
	}
	if err := fr.checkEntropy(); err != nil {
		return 0, err
	}

	fr.bytesRead += int64(len(b))
	return copy(b, fr.gen.PseudoRandomData(uint(len(b)))), nil
}

// Close stops all feeders. Reading from a closed reader fails.
func (fr *FortunaReader) Close() error {
	if !fr.stopped.SetToIf(false, true) {
		return nil
	}

	close(fr.stop)
	fr.routines.Wait()
	return nil
}
