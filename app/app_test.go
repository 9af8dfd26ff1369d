package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"studymeet/api"
	"studymeet/config"
	"studymeet/log"
	"studymeet/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessions() []api.Session {
	return []api.Session{
		{
			ID:                   "s1",
			Title:                "Calc Study",
			Description:          "Derivatives and integrals",
			CreatorUsername:      "ann",
			Tags:                 []string{"math", "calculus"},
			ParticipantUsernames: []string{"ann"},
		},
		{
			ID:                   "s2",
			Title:                "Bio Lab Prep",
			Description:          "Midterm review",
			CreatorUsername:      "bob",
			Tags:                 []string{"biology"},
			ParticipantUsernames: []string{"bob", "cam"},
		},
	}
}

func newTestHome(t *testing.T) *home {
	t.Helper()
	h := newHome(context.Background(), config.DefaultConfig())
	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, h.store.ApplySessions(h.store.BeginSessionsRefresh(), testSessions()))
	h.syncView()
	return h
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestJoinWithoutIdentityOpensSignIn(t *testing.T) {
	h := newTestHome(t)
	require.Nil(t, h.store.CurrentUser())

	cmd := h.toggleParticipation()

	// No backend call is issued; the sign-in overlay takes over instead.
	assert.Nil(t, cmd)
	assert.Equal(t, stateLogin, h.state)
	assert.NotNil(t, h.loginOverlay)
	assert.False(t, h.busy)
}

func TestJoinWithIdentityIssuesCall(t *testing.T) {
	h := newTestHome(t)
	h.store.SetUser(&api.User{Username: "dana"})

	cmd := h.toggleParticipation()

	assert.NotNil(t, cmd)
	assert.True(t, h.busy)
	assert.Equal(t, stateDefault, h.state)
}

func TestFailedMembershipKeepsSnapshot(t *testing.T) {
	h := newTestHome(t)
	h.store.SetUser(&api.User{Username: "dana"})
	h.busy = true

	before := h.store.Sessions()
	_, cmd := h.Update(membershipFinishedMsg{action: "join", err: errors.New("boom")})

	assert.False(t, h.busy)
	assert.Equal(t, before, h.store.Sessions())
	// The failure surfaces as a toast, not a refresh.
	assert.NotNil(t, cmd)
	assert.True(t, h.toastManager.HasActiveToasts())
}

func TestSuccessfulMembershipForcesRefresh(t *testing.T) {
	h := newTestHome(t)
	h.busy = true

	_, cmd := h.Update(membershipFinishedMsg{action: "leave"})

	assert.False(t, h.busy)
	assert.NotNil(t, cmd)
	assert.False(t, h.toastManager.HasActiveToasts())
}

func TestFailedRefreshKeepsPreviousList(t *testing.T) {
	h := newTestHome(t)
	gen := h.store.BeginSessionsRefresh()

	_, _ = h.Update(sessionsFetchedMsg{gen: gen, err: errors.New("connection refused")})

	assert.Equal(t, 2, h.list.NumSessions())
	// Poll failures are silent in the UI.
	assert.False(t, h.toastManager.HasActiveToasts())
}

func TestStaleRefreshDiscarded(t *testing.T) {
	h := newTestHome(t)
	oldGen := h.store.BeginSessionsRefresh()
	newGen := h.store.BeginSessionsRefresh()

	_, _ = h.Update(sessionsFetchedMsg{gen: newGen, sessions: testSessions()[:1]})
	_, _ = h.Update(sessionsFetchedMsg{gen: oldGen, sessions: testSessions()})

	assert.Equal(t, 1, h.list.NumSessions())
}

func TestLoginFlow(t *testing.T) {
	h := newTestHome(t)
	h.openLoginOverlay()
	require.Equal(t, stateLogin, h.state)

	for _, r := range "dana" {
		h.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := h.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, h.busy)

	_, _ = h.Update(loginFinishedMsg{user: &api.User{Username: "dana"}})
	assert.Equal(t, stateDefault, h.state)
	assert.False(t, h.busy)
	require.NotNil(t, h.store.CurrentUser())
	assert.Equal(t, "dana", h.store.CurrentUser().Username)
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	h := newTestHome(t)
	h.openLoginOverlay()

	_, cmd := h.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, h.busy)
	assert.Contains(t, h.loginOverlay.Render(), "required")
}

func TestSignOutIsLocal(t *testing.T) {
	h := newTestHome(t)
	h.store.SetUser(&api.User{Username: "dana"})

	_, cmd := h.handleKeyPress(keyMsg("S"))

	assert.Nil(t, h.store.CurrentUser())
	// Only a toast tick; no backend call is made on sign-out.
	assert.NotNil(t, cmd)
}

func TestCreateFormValidationKeepsOverlayOpen(t *testing.T) {
	h := newTestHome(t)
	h.openCreateOverlay()
	require.Equal(t, stateCreate, h.state)

	// Submitting an empty form fails validation client-side.
	_, cmd := h.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, h.busy)
	assert.Equal(t, stateCreate, h.state)
	assert.Contains(t, h.formOverlay.Render(), "required")
}

func TestCreateFailureKeepsFormContents(t *testing.T) {
	h := newTestHome(t)
	h.openCreateOverlay()
	for _, r := range "Algebra" {
		h.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	h.busy = true

	_, _ = h.Update(createFinishedMsg{err: errors.New("500")})

	assert.False(t, h.busy)
	assert.Equal(t, stateCreate, h.state)
	title, _, _, _ := h.formOverlay.Values()
	assert.Equal(t, "Algebra", title)
}

func TestTabToggleSwitchesCollection(t *testing.T) {
	h := newTestHome(t)
	require.True(t, h.store.ApplyTrending(h.store.BeginTrendingRefresh(), testSessions()[1:]))
	h.syncView()
	assert.Equal(t, 2, h.list.NumSessions())

	_, _ = h.handleKeyPress(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, ui.TabTrending, h.tabs.Active())
	assert.Equal(t, 1, h.list.NumSessions())
}

func TestSearchFiltersLive(t *testing.T) {
	h := newTestHome(t)
	_, _ = h.handleKeyPress(keyMsg("/"))
	require.Equal(t, stateSearch, h.state)

	for _, r := range "calc" {
		h.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, 1, h.list.NumSessions())

	// Esc clears the search entirely.
	_, _ = h.handleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateDefault, h.state)
	assert.Empty(t, h.searchTerm)
	assert.Equal(t, 2, h.list.NumSessions())
}

func TestSearchAcceptsSpaces(t *testing.T) {
	h := newTestHome(t)
	_, _ = h.handleKeyPress(keyMsg("/"))
	require.Equal(t, stateSearch, h.state)

	for _, r := range "calc" {
		h.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	// A space key carries its rune; it must not be inserted twice.
	h.handleKeyPress(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for _, r := range "study" {
		h.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "calc study", h.searchTerm)
	assert.Equal(t, 1, h.list.NumSessions())
}

func TestRefreshErrorLoggingThrottled(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := newTestHome(t)
	_, _ = h.Update(sessionsFetchedMsg{gen: h.store.BeginSessionsRefresh(), err: errors.New("refused")})
	_, _ = h.Update(sessionsFetchedMsg{gen: h.store.BeginSessionsRefresh(), err: errors.New("refused")})

	assert.Equal(t, 1, strings.Count(buf.String(), "failed to refresh"))
}

func TestEmptyMessagePerTab(t *testing.T) {
	h := newHome(context.Background(), config.DefaultConfig())
	h.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.syncView()
	assert.Contains(t, h.list.String(), "No sessions found")

	_, _ = h.handleKeyPress(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, h.list.String(), "No trending sessions")
}

func TestTagCyclingWrapsThroughUniverse(t *testing.T) {
	h := newTestHome(t)

	// "" -> math -> calculus -> biology -> "" (first-appearance order).
	h.cycleTag(1)
	assert.Equal(t, "math", h.selectedTag)
	h.cycleTag(1)
	assert.Equal(t, "calculus", h.selectedTag)
	h.cycleTag(1)
	assert.Equal(t, "biology", h.selectedTag)
	h.cycleTag(1)
	assert.Equal(t, "", h.selectedTag)

	h.cycleTag(-1)
	assert.Equal(t, "biology", h.selectedTag)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newTestHome(t)
	h.confirmDelete()
	require.Equal(t, stateConfirm, h.state)
	require.Equal(t, "s1", h.pendingDeleteID)

	t.Run("decline issues no call", func(t *testing.T) {
		_, cmd := h.handleKeyPress(keyMsg("n"))
		assert.Nil(t, cmd)
		assert.Equal(t, stateDefault, h.state)
		assert.False(t, h.busy)
		assert.Empty(t, h.pendingDeleteID)
	})

	t.Run("confirm issues the delete", func(t *testing.T) {
		h.confirmDelete()
		_, cmd := h.handleKeyPress(keyMsg("y"))
		assert.NotNil(t, cmd)
		assert.True(t, h.busy)
	})
}

func TestBusyGuardsMutatingKeys(t *testing.T) {
	h := newTestHome(t)
	h.store.SetUser(&api.User{Username: "dana"})
	h.busy = true

	_, cmd := h.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	_, _ = h.handleKeyPress(keyMsg("n"))
	assert.Equal(t, stateDefault, h.state)
}

func TestSessionSummary(t *testing.T) {
	s := testSessions()[0]
	summary := sessionSummary(&s)
	assert.Contains(t, summary, "Calc Study")
	assert.Contains(t, summary, "by ann")
	assert.Contains(t, summary, "math, calculus")
	assert.Contains(t, summary, "Participants: 1")
}
