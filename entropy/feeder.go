package entropy

import (
	"bytes"
	"encoding/binary"

	"github.com/tevino/abool"
)

// A Feeder gathers entropy from one source and feeds it to a FortunaReader
// once it has collected the configured minimum amount.
type Feeder struct {
	input        chan *entropyData
	entropy      int64
	minEntropy   int64
	needsEntropy *abool.AtomicBool
	buffer       *bytes.Buffer

	output chan<- []byte
	stop   <-chan struct{}
}

type entropyData struct {
	data    []byte
	entropy int
}

// NewFeeder returns a new entropy Feeder that feeds into fr.
// The feeder stops when fr is closed.
func (fr *FortunaReader) NewFeeder() *Feeder {
	f := &Feeder{
		input:        make(chan *entropyData),
		minEntropy:   fr.opts.MinFeedEntropy,
		needsEntropy: abool.NewBool(true),
		buffer:       new(bytes.Buffer),
		output:       fr.feed,
		stop:         fr.stop,
	}
	go f.run()
	return f
}

// NeedsEntropy returns whether the feeder is currently gathering entropy.
func (f *Feeder) NeedsEntropy() bool {
	return f.needsEntropy.IsSet()
}

// SupplyEntropy supplies entropy to to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropy(data []byte, entropy int) {
	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	case <-f.stop:
	}
}

// SupplyEntropyIfNeeded supplies entropy to to the Feeder, but will not block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyIfNeeded(data []byte, entropy int) {
	if !f.needsEntropy.IsSet() {
		return
	}

	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	default:
	}
}

// SupplyEntropyAsInt supplies entropy to to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropyAsInt(n int64, entropy int) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	f.SupplyEntropy(b, entropy)
}

// SupplyEntropyAsIntIfNeeded supplies entropy to to the Feeder, but will not block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyAsIntIfNeeded(n int64, entropy int) {
	if f.needsEntropy.IsSet() { // avoid allocating a slice if possible
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(n))
		f.SupplyEntropyIfNeeded(b, entropy)
	}
}

// CloseFeeder stops the feed processing - the responsible goroutine exits.
func (f *Feeder) CloseFeeder() {
	select {
	case f.input <- nil:
	case <-f.stop:
	}
}

func (f *Feeder) run() {
	defer f.needsEntropy.UnSet()

	for {
		// gather
		f.needsEntropy.Set()
	gather:
		for {
			select {
			case newEntropy := <-f.input:
				if newEntropy == nil {
					return
				}
				f.buffer.Write(newEntropy.data)
				f.entropy += int64(newEntropy.entropy)
				if f.entropy >= f.minEntropy {
					break gather
				}
			case <-f.stop:
				return
			}
		}

		// feed
		f.needsEntropy.UnSet()
		select {
		case f.output <- f.buffer.Bytes():
		case <-f.stop:
			return
		}
		f.buffer = new(bytes.Buffer)
		f.entropy = 0
	}
}
