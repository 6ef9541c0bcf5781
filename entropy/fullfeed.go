package entropy

import (
	"time"
)

func (fr *FortunaReader) getFullFeedDuration() time.Duration {
	// full feed every 5x time of the reseed interval
	untilFullFeed := fr.opts.ReseedAfter * 5

	// full feed at most once per minute
	if untilFullFeed < time.Minute {
		untilFullFeed = time.Minute
	}

	return untilFullFeed
}

// fullFeeder regularly reseeds the generator with everything the feeders have
// gathered, independent of reads.
func (fr *FortunaReader) fullFeeder() {
	fullFeedDuration := 100 * time.Millisecond

	for {
		select {
		case <-time.After(fullFeedDuration):
			fr.feedAll()
		case <-fr.stop:
			return
		}

		fullFeedDuration = fr.getFullFeedDuration()
	}
}

// maxFullFeeds caps the reseeds per full feed, as the OS feeder is
// immediately ready again.
const maxFullFeeds = 8

func (fr *FortunaReader) feedAll() {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	for i := 0; i < maxFullFeeds; i++ {
		select {
		case data := <-fr.feed:
			fr.gen.Reseed(data)
			fr.lastFeed = time.Now()
		default:
			return
		}
	}
}
