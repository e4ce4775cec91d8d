// Package service implements the per-session domain state behind
// each screen: a cached list with pagination, loading/submitting
// flags and the CRUD operations against the upstream API. Each
// service mirrors one of the original client's composables; a
// Registry hands out one set of services per session and drops it
// on logout.
package service

import "sync"

// state is the bookkeeping every service embeds: the flags the
// screens poll, the last error message, and a monotonically
// increasing sequence number used to discard stale list responses
// (a slow fetch finishing after a newer one must not win).
type state struct {
	mu         sync.Mutex
	loading    bool
	submitting bool
	err        string
	seq        uint64
}

// beginLoad marks the service loading, clears the previous error
// and claims a fresh sequence number for the caller's fetch.
func (s *state) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
	s.seq++
	return s.seq
}

// endLoad clears the loading flag. Runs in a defer on every fetch
// path, success or failure.
func (s *state) endLoad() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// latest reports whether seq is still the newest fetch issued.
// Callers must hold mu.
func (s *state) latest(seq uint64) bool { return s.seq == seq }

func (s *state) beginSubmit() {
	s.mu.Lock()
	s.submitting = true
	s.err = ""
	s.mu.Unlock()
}

func (s *state) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

func (s *state) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// IsLoading reports whether a fetch is in flight.
func (s *state) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsSubmitting reports whether a mutation is in flight.
func (s *state) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Err returns the last recorded error message, empty when clean.
func (s *state) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// reset returns the bookkeeping to its initial state.
func (s *state) reset() {
	s.mu.Lock()
	s.loading = false
	s.submitting = false
	s.err = ""
	s.mu.Unlock()
}
