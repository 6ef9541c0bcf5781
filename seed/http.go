package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/safing/cfrand/log"
	"github.com/safing/cfrand/metrics"
)

// DefaultUserAgent is sent with seed requests if no other is configured.
const DefaultUserAgent = "cfrand-client"

// DefaultTimeout bounds a seed request if no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxResponseSize limits how much of a response body is read.
const maxResponseSize = 64 << 10

// Common errors.
var (
	ErrMissingURL           = errors.New("seed source url is not set")
	ErrUnexpectedStatusCode = errors.New("received unexpected status")
	ErrResponseTooLarge     = errors.New("response too large")
)

var (
	fetchesOK     = metrics.NewCounter(`cfrand_seed_fetches_total{result="ok"}`)
	fetchesFailed = metrics.NewCounter(`cfrand_seed_fetches_total{result="error"}`)
)

// HTTPFetcher fetches the seed from an HTTP seed source. Exactly one request
// is made per call, there are no retries.
type HTTPFetcher struct {
	// URL of the seed source. Required.
	URL string
	// UserAgent is sent with the request. Defaults to DefaultUserAgent.
	UserAgent string
	// Timeout bounds the whole request, including reading the body.
	// Zero means that only the deadline of the context applies.
	Timeout time.Duration
	// Client is used to make the request. Defaults to http.DefaultClient.
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher for the given seed source with the default
// User-Agent and timeout.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		URL:       url,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// FetchSeed requests and parses a seed. All errors wrap ErrSeed.
func (hf *HTTPFetcher) FetchSeed(ctx context.Context) (Seed, error) {
	s, err := hf.fetch(ctx)
	if err != nil {
		fetchesFailed.Inc()
		log.Warningf("seed: failed to fetch seed: %s", err)
		return Seed{}, err
	}

	fetchesOK.Inc()
	log.Debugf("seed: fetched seed %s from %s", s, hf.URL)
	return s, nil
}

func (hf *HTTPFetcher) fetch(ctx context.Context) (Seed, error) {
	if hf.URL == "" {
		return Seed{}, fmt.Errorf("%w: %w", ErrSeed, ErrMissingURL)
	}

	if hf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hf.Timeout)
		defer cancel()
	}

	// create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hf.URL, http.NoBody)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: failed to create request for %q: %w", ErrSeed, hf.URL, err)
	}

	// set user agent
	userAgent := hf.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	// start request
	client := hf.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: failed to make request to %q: %w", ErrSeed, hf.URL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // body is fully read or discarded

	// check return code
	if resp.StatusCode != http.StatusOK {
		return Seed{}, fmt.Errorf("%w: failed to fetch %q: %w %s", ErrSeed, hf.URL, ErrUnexpectedStatusCode, resp.Status)
	}

	// read body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return Seed{}, fmt.Errorf("%w: failed to read response from %q: %w", ErrSeed, hf.URL, err)
	}
	if len(body) > maxResponseSize {
		return Seed{}, fmt.Errorf("%w: %w: more than %d bytes", ErrSeed, ErrResponseTooLarge, maxResponseSize)
	}

	return Parse(body)
}
