package app

import (
	"time"

	"studymeet/api"
	"studymeet/log"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshTickMsg fires on the fixed poll period and triggers a refresh of
// both collections.
type refreshTickMsg struct{}

// toastTickMsg drives toast expiry while any toast is on screen.
type toastTickMsg struct{}

// sessionsFetchedMsg carries the result of a sessions refresh together with
// the generation claimed when the fetch was issued.
type sessionsFetchedMsg struct {
	gen      uint64
	sessions []api.Session
	err      error
}

// trendingFetchedMsg carries the result of a trending refresh.
type trendingFetchedMsg struct {
	gen      uint64
	sessions []api.Session
	err      error
}

// loginFinishedMsg carries the result of a sign-in call.
type loginFinishedMsg struct {
	user *api.User
	err  error
}

// createFinishedMsg carries the result of a create-session call.
type createFinishedMsg struct {
	err error
}

// membershipFinishedMsg carries the result of a join or leave call.
type membershipFinishedMsg struct {
	action string // "join" or "leave"
	err    error
}

// deleteFinishedMsg carries the result of a delete call.
type deleteFinishedMsg struct {
	title string
	err   error
}

// healthCheckedMsg carries the result of the startup health probe.
type healthCheckedMsg struct {
	err error
}

// fetchSessionsCmd claims a generation and fetches the full session list.
// The store discards the response if a younger refresh lands first.
func (m *home) fetchSessionsCmd() tea.Cmd {
	gen := m.store.BeginSessionsRefresh()
	return func() tea.Msg {
		sessions, err := m.client.ListSessions()
		return sessionsFetchedMsg{gen: gen, sessions: sessions, err: err}
	}
}

// fetchTrendingCmd claims a generation and fetches the trending subset.
func (m *home) fetchTrendingCmd() tea.Cmd {
	gen := m.store.BeginTrendingRefresh()
	return func() tea.Msg {
		sessions, err := m.client.TrendingSessions()
		return trendingFetchedMsg{gen: gen, sessions: sessions, err: err}
	}
}

// refreshAllCmd refreshes both collections. The two fetches are independent;
// one may fail while the other still updates its slot.
func (m *home) refreshAllCmd() tea.Cmd {
	return tea.Batch(m.fetchSessionsCmd(), m.fetchTrendingCmd())
}

// tickRefreshCmd schedules the next periodic refresh.
func (m *home) tickRefreshCmd() tea.Cmd {
	interval := m.pollInterval
	return func() tea.Msg {
		time.Sleep(interval)
		return refreshTickMsg{}
	}
}

func toastTickCmd() tea.Msg {
	time.Sleep(500 * time.Millisecond)
	return toastTickMsg{}
}

func (m *home) healthCheckCmd() tea.Cmd {
	return func() tea.Msg {
		return healthCheckedMsg{err: m.client.Health()}
	}
}

func (m *home) loginCmd(username string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.Login(username)
		return loginFinishedMsg{user: user, err: err}
	}
}

func (m *home) createSessionCmd(create api.CreateSessionRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := m.client.CreateSession(create)
		return createFinishedMsg{err: err}
	}
}

func (m *home) joinSessionCmd(sessionID, username string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.JoinSession(sessionID, username)
		return membershipFinishedMsg{action: "join", err: err}
	}
}

func (m *home) leaveSessionCmd(sessionID, username string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.LeaveSession(sessionID, username)
		return membershipFinishedMsg{action: "leave", err: err}
	}
}

func (m *home) deleteSessionCmd(sessionID, title string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.DeleteSession(sessionID)
		return deleteFinishedMsg{title: title, err: err}
	}
}

// toggleParticipation is the join/leave entry point. Joining without an
// identity opens the sign-in overlay instead of calling the backend; leaving
// without one is a no-op since "not joined" is already implied.
func (m *home) toggleParticipation() tea.Cmd {
	selected := m.list.Selected()
	if selected == nil {
		return nil
	}

	user := m.store.CurrentUser()
	if user == nil {
		m.openLoginOverlay()
		return nil
	}

	m.busy = true
	if m.store.HasJoined(selected) {
		return m.leaveSessionCmd(selected.ID, user.Username)
	}
	return m.joinSessionCmd(selected.ID, user.Username)
}

// submitCreateForm validates the form overlay's contents and, when valid,
// issues the create call. Invalid input never reaches the backend.
func (m *home) submitCreateForm() tea.Cmd {
	title, description, schedule, tags := m.formOverlay.Values()
	f := m.createForm
	f.Title = title
	f.Description = description
	f.DateTime = schedule
	f.Tags = tags

	req, err := f.Request()
	if err != nil {
		m.formOverlay.SetError(err.Error())
		return nil
	}

	m.busy = true
	return m.createSessionCmd(req)
}

// submitLogin validates the username and issues the login call.
func (m *home) submitLogin() tea.Cmd {
	m.loginForm.Username = m.loginOverlay.GetValue()
	if err := m.loginForm.Validate(); err != nil {
		m.loginOverlay.SetError(err.Error())
		return nil
	}

	m.busy = true
	return m.loginCmd(m.loginForm.Normalized())
}

// confirmDelete opens the delete confirmation for the selected session.
func (m *home) confirmDelete() {
	selected := m.list.Selected()
	if selected == nil {
		return
	}
	m.pendingDeleteID = selected.ID
	m.pendingDeleteTitle = selected.Title
	m.openConfirmOverlay("Delete session '" + selected.Title + "'?")
}

func (m *home) logRefreshError(collection string, err error) {
	if m.refreshLogEvery.ShouldLog() {
		log.Errorf("failed to refresh %s: %v", collection, err)
	}
}
