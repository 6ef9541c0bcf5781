// Package seedtest provides an in-process seed source for tests.
package seedtest

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
	"github.com/tidwall/sjson"
	"golang.org/x/crypto/sha3"

	"github.com/safing/cfrand/seed"
)

// Path is the path the seed is served on.
const Path = "/seed"

// Server is a seed source answering like the real one. Its responses can be
// changed to simulate broken sources.
type Server struct {
	*httptest.Server

	lock       sync.Mutex
	status     int
	body       []byte
	requests   int
	userAgents []string
}

// Digest returns the SHA3-512 digest of payload as a seed.
func Digest(payload []byte) seed.Seed {
	return seed.Seed(sha3.Sum512(payload))
}

// NewServer starts a server that serves the digest of payload.
func NewServer(payload []byte) *Server {
	s := &Server{
		status: http.StatusOK,
	}
	digest := Digest(payload)
	s.SetDigest(hex.EncodeToString(digest[:]))

	r := mux.NewRouter()
	r.HandleFunc(Path, s.handleSeed).Methods(http.MethodGet)
	s.Server = httptest.NewServer(r)

	return s
}

// SeedURL returns the full URL of the seed endpoint.
func (s *Server) SeedURL() string {
	return s.URL + Path
}

// SetDigest makes the server respond with the given value in the digest field.
func (s *Server) SetDigest(hexDigest string) {
	body, err := sjson.SetBytes([]byte(`{"algorithm":"sha3-512"}`), seed.DigestField, hexDigest)
	if err != nil {
		panic(err)
	}
	s.SetBody(body)
}

// SetBody makes the server respond with the given raw body.
func (s *Server) SetBody(body []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.body = body
}

// SetStatus makes the server respond with the given status code.
func (s *Server) SetStatus(code int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.status = code
}

// Requests returns the number of seed requests served.
func (s *Server) Requests() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.requests
}

// UserAgents returns the User-Agent headers of all seed requests.
func (s *Server) UserAgents() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]string(nil), s.userAgents...)
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	s.requests++
	s.userAgents = append(s.userAgents, r.UserAgent())
	status, body := s.status, s.body
	s.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
