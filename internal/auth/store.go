// Package auth holds the mutable credential state shared by every API call.
package auth

import (
	"strings"
	"sync"
)

// Store is a threadsafe holder for the access token and the profile of the
// athlete it authenticates. Configure operations replace the snapshot under
// an exclusive lock; calls read it under a shared lock, so reconfiguration
// never interleaves with an in-flight read.
type Store[P any] struct {
	mu         sync.RWMutex
	token      string
	profile    P
	hasProfile bool
}

// NewStore returns an empty store.
func NewStore[P any]() *Store[P] {
	return &Store[P]{}
}

// SetToken installs the bearer token. Whitespace-only tokens count as empty.
func (s *Store[P]) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// Token returns the current bearer token, or "" when none is held.
func (s *Store[P]) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetProfile installs the authenticated profile snapshot.
func (s *Store[P]) SetProfile(profile P) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.hasProfile = true
}

// Profile returns the stored profile and whether one is held.
func (s *Store[P]) Profile() (P, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.hasProfile
}

// Clear removes the token and profile.
func (s *Store[P]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero P
	s.token = ""
	s.profile = zero
	s.hasProfile = false
}
