package entropy

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/safing/cfrand/log"
)

func (fr *FortunaReader) osFeeder() {
	feeder := fr.NewFeeder()

	// get feed entropy
	minEntropyBytes := int(fr.opts.MinFeedEntropy)/8 + 1
	if minEntropyBytes < 32 {
		minEntropyBytes = 64
	}

	for {
		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		_, err := io.ReadFull(rand.Reader, osEntropy)
		if err != nil {
			log.Errorf("entropy: could not read entropy from os: %s", err)
			select {
			case <-time.After(10 * time.Second):
				continue
			case <-fr.stop:
				return
			}
		}

		// feed
		feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)

		if fr.stopped.IsSet() {
			return
		}
	}
}
