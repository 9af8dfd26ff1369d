package store

import (
	"testing"

	"studymeet/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySessionsReplacesWholesale(t *testing.T) {
	s := New()

	gen := s.BeginSessionsRefresh()
	require.True(t, s.ApplySessions(gen, []api.Session{{ID: "s1"}}))
	require.Len(t, s.Sessions(), 1)

	gen = s.BeginSessionsRefresh()
	require.True(t, s.ApplySessions(gen, []api.Session{{ID: "s2"}, {ID: "s3"}}))

	sessions := s.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
}

func TestStaleResponseDiscarded(t *testing.T) {
	s := New()

	older := s.BeginSessionsRefresh()
	newer := s.BeginSessionsRefresh()

	// The newer refresh lands first.
	require.True(t, s.ApplySessions(newer, []api.Session{{ID: "fresh"}}))
	// The older one completes afterwards and must be discarded.
	require.False(t, s.ApplySessions(older, []api.Session{{ID: "stale"}}))

	sessions := s.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "fresh", sessions[0].ID)
}

func TestCollectionsRefreshIndependently(t *testing.T) {
	s := New()

	sGen := s.BeginSessionsRefresh()
	tGen := s.BeginTrendingRefresh()

	require.True(t, s.ApplySessions(sGen, []api.Session{{ID: "all1"}}))
	require.True(t, s.ApplyTrending(tGen, []api.Session{{ID: "hot1"}}))

	// A failed sessions refresh (no Apply call) leaves both snapshots alone.
	_ = s.BeginSessionsRefresh()
	assert.Len(t, s.Sessions(), 1)
	assert.Len(t, s.Trending(), 1)
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	s := New()
	gen := s.BeginSessionsRefresh()
	require.True(t, s.ApplySessions(gen, []api.Session{{ID: "keep"}}))

	// Simulate a refresh whose fetch errored: a generation is claimed but
	// nothing is applied.
	_ = s.BeginSessionsRefresh()

	sessions := s.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "keep", sessions[0].ID)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New()
	gen := s.BeginSessionsRefresh()
	require.True(t, s.ApplySessions(gen, []api.Session{{ID: "s1", Title: "orig"}}))

	snapshot := s.Sessions()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "orig", s.Sessions()[0].Title)
}

func TestHasJoined(t *testing.T) {
	s := New()
	session := &api.Session{ID: "s1", ParticipantUsernames: []string{"ann", "bob"}}

	t.Run("no identity means never joined", func(t *testing.T) {
		assert.False(t, s.HasJoined(session))
	})

	t.Run("member identity", func(t *testing.T) {
		s.SetUser(&api.User{Username: "ann"})
		assert.True(t, s.HasJoined(session))
	})

	t.Run("non-member identity", func(t *testing.T) {
		s.SetUser(&api.User{Username: "carol"})
		assert.False(t, s.HasJoined(session))
	})

	t.Run("cleared identity", func(t *testing.T) {
		s.SetUser(&api.User{Username: "ann"})
		s.ClearUser()
		assert.False(t, s.HasJoined(session))
		assert.Nil(t, s.CurrentUser())
	})
}
