// Package store owns the client-side session directory: the last-known-good
// snapshots of the full session list and the trending subset, plus the
// current identity. Collections are only ever replaced wholesale by completed
// refreshes; a failed refresh leaves the previous snapshot in place.
package store

import (
	"sync"

	"studymeet/api"
)

// Store holds the authoritative local view of backend state.
type Store struct {
	mu sync.RWMutex

	sessions []api.Session
	trending []api.Session
	user     *api.User

	// Per-collection generation counters. Each refresh claims a generation
	// before its fetch is issued; a response is discarded if a younger
	// refresh already applied. This closes the out-of-order completion race
	// between the periodic tick and mutation-triggered refreshes.
	sessionsGen        uint64
	sessionsAppliedGen uint64
	trendingGen        uint64
	trendingAppliedGen uint64
}

func New() *Store {
	return &Store{}
}

// BeginSessionsRefresh claims a generation for an in-flight sessions fetch.
func (s *Store) BeginSessionsRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionsGen++
	return s.sessionsGen
}

// BeginTrendingRefresh claims a generation for an in-flight trending fetch.
func (s *Store) BeginTrendingRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trendingGen++
	return s.trendingGen
}

// ApplySessions replaces the sessions snapshot if gen is newer than the last
// applied refresh. Returns false when the response was stale and discarded.
func (s *Store) ApplySessions(gen uint64, sessions []api.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.sessionsAppliedGen {
		return false
	}
	s.sessionsAppliedGen = gen
	s.sessions = sessions
	return true
}

// ApplyTrending replaces the trending snapshot if gen is newer than the last
// applied refresh. Returns false when the response was stale and discarded.
func (s *Store) ApplyTrending(gen uint64, trending []api.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.trendingAppliedGen {
		return false
	}
	s.trendingAppliedGen = gen
	s.trending = trending
	return true
}

// Sessions returns a copy of the current sessions snapshot.
func (s *Store) Sessions() []api.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySessions(s.sessions)
}

// Trending returns a copy of the current trending snapshot.
func (s *Store) Trending() []api.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySessions(s.trending)
}

// SetUser records the signed-in identity.
func (s *Store) SetUser(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// ClearUser signs out locally. There is no server call to make.
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// CurrentUser returns the signed-in identity, or nil.
func (s *Store) CurrentUser() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// HasJoined reports whether the current identity is a participant of the
// session. Without an identity every session reads as not joined.
func (s *Store) HasJoined(session *api.Session) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	return session.HasParticipant(s.user.Username)
}

func copySessions(in []api.Session) []api.Session {
	if in == nil {
		return nil
	}
	out := make([]api.Session, len(in))
	copy(out, in)
	return out
}
