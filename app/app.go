package app

import (
	"context"
	"fmt"
	"time"

	"studymeet/api"
	"studymeet/config"
	"studymeet/form"
	"studymeet/keys"
	"studymeet/log"
	"studymeet/store"
	"studymeet/ui"
	"studymeet/ui/overlay"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	p := tea.NewProgram(
		newHome(ctx, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateCreate is the state when the create-session form is open.
	stateCreate
	// stateLogin is the state when the sign-in overlay is open.
	stateLogin
	// stateSearch is the state when the search field has focus.
	stateSearch
	// stateHelp is the state when the help screen is displayed.
	stateHelp
	// stateConfirm is the state when a delete confirmation is displayed.
	stateConfirm
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig    *config.Config
	client       *api.Client
	store        *store.Store
	pollInterval time.Duration

	// -- State --

	// state is the current discrete state of the application
	state state
	// busy is the shared loading flag: set while any mutating call
	// (create/login/join/leave/delete) is in flight, disabling the
	// controls that would start another one.
	busy bool

	// searchTerm and selectedTag are the transient filter state.
	searchTerm  string
	selectedTag string

	// searchDraft holds the term being edited while in stateSearch.
	searchDraft string

	// createForm and loginForm hold normalized form state between submissions.
	createForm *form.CreateSession
	loginForm  *form.Login

	// pendingDeleteID/Title identify the session awaiting delete confirmation.
	pendingDeleteID    string
	pendingDeleteTitle string
	confirmAccepted    bool

	// toastTicking is true while a toast expiry tick chain is running.
	toastTicking bool

	// refreshLogEvery throttles poll-failure logging; during an outage every
	// tick fails and a line per tick would swamp the log file.
	refreshLogEvery *log.Every

	// -- UI Components --

	tabs         *ui.Tabs
	list         *ui.List
	detail       *ui.Detail
	menu         *ui.Menu
	toastManager *overlay.ToastManager
	spinner      spinner.Model

	formOverlay    *overlay.FormOverlay
	loginOverlay   *overlay.SingleLineInputOverlay
	textOverlay    *overlay.TextOverlay
	confirmOverlay *overlay.ConfirmationOverlay

	width, height int
	contentHeight int
}

func newHome(ctx context.Context, cfg *config.Config) *home {
	st := store.New()
	h := &home{
		ctx:          ctx,
		appConfig:    cfg,
		client:       api.NewClient(cfg.ServerURL),
		store:        st,
		pollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
		state:        stateDefault,
		createForm:   &form.CreateSession{},
		loginForm:    &form.Login{},
		tabs:         ui.NewTabs(),
		detail:       ui.NewDetail(),
		menu:         ui.NewMenu(),
		toastManager:    overlay.NewToastManager(),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		refreshLogEvery: log.NewEvery(30 * time.Second),
	}
	h.list = ui.NewList(st.HasJoined)
	return h
}

func (m *home) Init() tea.Cmd {
	// Immediate refresh of both collections on mount, a health probe, and
	// the first periodic tick.
	return tea.Batch(
		m.spinner.Tick,
		m.refreshAllCmd(),
		m.healthCheckCmd(),
		m.tickRefreshCmd(),
	)
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	// Header takes 3 rows, menu 2; the rest is list + detail.
	m.contentHeight = msg.Height - 5
	if m.contentHeight < 4 {
		m.contentHeight = 4
	}

	listWidth := int(float32(msg.Width) * 0.38)
	if listWidth < 24 {
		listWidth = 24
	}
	detailWidth := msg.Width - listWidth

	m.list.SetSize(listWidth, m.contentHeight)
	m.detail.SetSize(detailWidth, m.contentHeight)
	m.menu.SetSize(msg.Width, 2)
	m.tabs.SetSize(msg.Width)
	m.toastManager.SetSize(msg.Width, msg.Height)
}

// visibleSessions derives the rendered collection from the store and the
// filter state. Filtering applies to the full list; the trending tab shows
// the server ranking untouched.
func (m *home) visibleSessions() []api.Session {
	if m.tabs.Active() == ui.TabTrending {
		return m.store.Trending()
	}
	return store.Filter(m.store.Sessions(), m.searchTerm, m.selectedTag)
}

// syncView pushes current store + filter state into the list and detail panes.
func (m *home) syncView() {
	if m.tabs.Active() == ui.TabTrending {
		m.list.SetEmptyMessage("No trending sessions")
	} else {
		m.list.SetEmptyMessage("No sessions found")
	}
	m.list.SetSessions(m.visibleSessions())

	selected := m.list.Selected()
	joined := false
	if selected != nil {
		joined = m.store.HasJoined(selected)
	}
	m.detail.SetSession(selected, joined)

	m.menu.SetSignedIn(m.store.CurrentUser() != nil)
	if m.list.NumSessions() == 0 {
		m.menu.SetState(ui.StateEmpty)
	} else if m.state == stateDefault {
		m.menu.SetState(ui.StateDefault)
	}
}

// notify adds a toast and keeps exactly one expiry tick chain running.
func (m *home) notify(add func(string) string, msg string) tea.Cmd {
	add(msg)
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return toastTickCmd
}

func (m *home) notifyError(msg string) tea.Cmd {
	return m.notify(m.toastManager.Error, msg)
}

func (m *home) notifySuccess(msg string) tea.Cmd {
	return m.notify(m.toastManager.Success, msg)
}

func (m *home) notifyInfo(msg string) tea.Cmd {
	return m.notify(m.toastManager.Info, msg)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshTickMsg:
		// Periodic refresh, then schedule the next tick. Overlapping with a
		// mutation-triggered refresh is fine; generations settle the race.
		return m, tea.Batch(m.refreshAllCmd(), m.tickRefreshCmd())

	case toastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, toastTickCmd
		}
		m.toastTicking = false
		return m, nil

	case sessionsFetchedMsg:
		if msg.err != nil {
			// Keep the previous snapshot; stale-but-available is the
			// outage contract.
			m.logRefreshError("sessions", msg.err)
			return m, nil
		}
		if !m.store.ApplySessions(msg.gen, msg.sessions) {
			log.Debugf("discarded stale sessions refresh (gen %d)", msg.gen)
			return m, nil
		}
		m.syncView()
		return m, nil

	case trendingFetchedMsg:
		if msg.err != nil {
			m.logRefreshError("trending sessions", msg.err)
			return m, nil
		}
		if !m.store.ApplyTrending(msg.gen, msg.sessions) {
			log.Debugf("discarded stale trending refresh (gen %d)", msg.gen)
			return m, nil
		}
		m.syncView()
		return m, nil

	case healthCheckedMsg:
		if msg.err != nil {
			log.Errorf("backend health check failed: %v", msg.err)
			return m, m.notifyError("Backend unreachable at " + m.appConfig.ServerURL)
		}
		return m, nil

	case loginFinishedMsg:
		m.busy = false
		if msg.err != nil {
			log.Errorf("login failed: %v", msg.err)
			if m.loginOverlay != nil {
				m.loginOverlay.SetError("sign in failed, try again")
			}
			return m, m.notifyError("Sign in failed. Please try again.")
		}
		m.store.SetUser(msg.user)
		m.loginForm.Username = ""
		m.loginOverlay = nil
		m.state = stateDefault
		m.syncView()
		return m, m.notifySuccess("Signed in as " + msg.user.Username)

	case createFinishedMsg:
		m.busy = false
		if msg.err != nil {
			log.Errorf("create session failed: %v", msg.err)
			// Keep the form open with its contents so the user can retry
			// without retyping.
			if m.formOverlay != nil {
				m.formOverlay.SetError("create failed, try again")
			}
			return m, m.notifyError("Failed to create session. Please try again.")
		}
		m.createForm.Reset()
		m.formOverlay = nil
		m.state = stateDefault
		return m, tea.Batch(
			m.notifySuccess("Session created"),
			m.refreshAllCmd(),
		)

	case membershipFinishedMsg:
		m.busy = false
		if msg.err != nil {
			log.Errorf("%s session failed: %v", msg.action, msg.err)
			return m, m.notifyError(fmt.Sprintf("Failed to %s session. Please try again.", msg.action))
		}
		return m, m.refreshAllCmd()

	case deleteFinishedMsg:
		m.busy = false
		if msg.err != nil {
			log.Errorf("delete session failed: %v", msg.err)
			return m, m.notifyError("Failed to delete session. Please try again.")
		}
		return m, tea.Batch(
			m.notifySuccess("Deleted '"+msg.title+"'"),
			m.refreshAllCmd(),
		)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		m.syncView()
		return m, nil
	}

	return m, nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateCreate:
		return m.handleCreateFormKey(msg)
	case stateLogin:
		return m.handleLoginKey(msg)
	case stateSearch:
		return m.handleSearchKey(msg)
	case stateHelp:
		if m.textOverlay.HandleKeyPress(msg) {
			m.textOverlay = nil
			m.state = stateDefault
			m.menu.SetState(ui.StateDefault)
		}
		return m, nil
	case stateConfirm:
		return m.handleConfirmKey(msg)
	}

	return m.handleDefaultKey(msg)
}

func (m *home) handleCreateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if !m.formOverlay.HandleKeyPress(msg) {
		return m, nil
	}
	if m.formOverlay.IsCanceled() {
		m.formOverlay = nil
		m.state = stateDefault
		m.menu.SetState(ui.StateDefault)
		return m, nil
	}
	// Submitted: validation may still keep the overlay open.
	cmd := m.submitCreateForm()
	return m, cmd
}

func (m *home) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if !m.loginOverlay.HandleKeyPress(msg) {
		return m, nil
	}
	if m.loginOverlay.IsCanceled() {
		m.loginOverlay = nil
		m.state = stateDefault
		m.menu.SetState(ui.StateDefault)
		return m, nil
	}
	cmd := m.submitLogin()
	return m, cmd
}

func (m *home) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Esc clears the search.
		m.searchDraft = ""
		m.searchTerm = ""
		m.state = stateDefault
		m.syncView()
		return m, nil
	case tea.KeyEnter:
		m.searchTerm = m.searchDraft
		m.state = stateDefault
		m.syncView()
		return m, nil
	case tea.KeyBackspace:
		if len(m.searchDraft) > 0 {
			runes := []rune(m.searchDraft)
			m.searchDraft = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		// A space arrives as KeySpace with Runes already set to " ".
		if len(msg.Runes) > 0 {
			m.searchDraft += string(msg.Runes)
		} else {
			m.searchDraft += " "
		}
	}
	// Live filtering while typing.
	m.searchTerm = m.searchDraft
	m.syncView()
	return m, nil
}

func (m *home) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.confirmOverlay.HandleKeyPress(msg) {
		return m, nil
	}
	accepted := m.confirmAccepted
	m.confirmAccepted = false
	m.state = stateDefault
	m.confirmOverlay = nil

	id, title := m.pendingDeleteID, m.pendingDeleteTitle
	m.pendingDeleteID = ""
	m.pendingDeleteTitle = ""
	if !accepted || id == "" {
		return m, nil
	}
	m.busy = true
	return m, m.deleteSessionCmd(id, title)
}

func (m *home) handleDefaultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Direct tab shortcuts, matching the tab labels.
	switch msg.String() {
	case "1":
		m.tabs.Set(ui.TabAll)
		m.syncView()
		return m, nil
	case "2":
		m.tabs.Set(ui.TabTrending)
		m.syncView()
		return m, nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyUp:
		m.list.Up()
		m.syncView()
		return m, nil
	case keys.KeyDown:
		m.list.Down()
		m.syncView()
		return m, nil
	case keys.KeyTab:
		m.tabs.Toggle()
		m.syncView()
		return m, nil
	case keys.KeyToggleJoin:
		if m.busy {
			return m, nil
		}
		return m, m.toggleParticipation()
	case keys.KeyNew:
		if m.busy {
			return m, nil
		}
		m.openCreateOverlay()
		return m, nil
	case keys.KeyDelete:
		if m.busy {
			return m, nil
		}
		m.confirmDelete()
		return m, nil
	case keys.KeySignIn:
		if m.busy {
			return m, nil
		}
		if m.store.CurrentUser() == nil {
			m.openLoginOverlay()
		}
		return m, nil
	case keys.KeySignOut:
		if m.store.CurrentUser() == nil {
			return m, nil
		}
		m.store.ClearUser()
		m.syncView()
		return m, m.notifyInfo("Signed out")
	case keys.KeySearch:
		m.state = stateSearch
		m.searchDraft = m.searchTerm
		return m, nil
	case keys.KeyTagNext:
		m.cycleTag(1)
		m.syncView()
		return m, nil
	case keys.KeyTagPrev:
		m.cycleTag(-1)
		m.syncView()
		return m, nil
	case keys.KeyRefresh:
		return m, m.refreshAllCmd()
	case keys.KeyCopy:
		return m, m.copySelected()
	case keys.KeyHelp:
		m.openHelpOverlay()
		return m, nil
	case keys.KeyQuit:
		return m, tea.Quit
	}

	return m, nil
}

// cycleTag steps the selected tag through the tag universe. The empty tag
// ("all") sits at position 0. The universe derives from the full session
// list only, never from trending.
func (m *home) cycleTag(delta int) {
	universe := store.Tags(m.store.Sessions())
	if len(universe) == 0 {
		m.selectedTag = ""
		return
	}

	// Positions: 0 = "", 1..n = universe[0..n-1].
	pos := 0
	for i, tag := range universe {
		if tag == m.selectedTag {
			pos = i + 1
			break
		}
	}
	pos = (pos + delta + len(universe) + 1) % (len(universe) + 1)
	if pos == 0 {
		m.selectedTag = ""
	} else {
		m.selectedTag = universe[pos-1]
	}
}

func (m *home) openCreateOverlay() {
	if m.formOverlay == nil {
		m.formOverlay = overlay.NewFormOverlay("Create Study Session")
	}
	m.formOverlay.SetSize(int(float32(m.width)*0.6), int(float32(m.height)*0.6))
	m.state = stateCreate
	m.menu.SetState(ui.StateOverlay)
}

func (m *home) openLoginOverlay() {
	m.loginOverlay = overlay.NewSingleLineInputOverlay("Welcome to StudyMeet", "Enter your username")
	m.loginOverlay.SetSize(int(float32(m.width)*0.5), 8)
	m.state = stateLogin
	m.menu.SetState(ui.StateOverlay)
}

func (m *home) openConfirmOverlay(message string) {
	m.confirmAccepted = false
	m.confirmOverlay = overlay.NewConfirmationOverlay(message)
	m.confirmOverlay.OnConfirm = func() { m.confirmAccepted = true }
	m.state = stateConfirm
}

func (m *home) openHelpOverlay() {
	m.textOverlay = overlay.NewTextOverlay(helpText)
	m.textOverlay.SetWidth(int(float32(m.width) * 0.6))
	m.state = stateHelp
}

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7EC8D8")).
	Bold(true)

var headerInfoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#7A7474", Dark: "#9C9494"})

var filterActiveStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("216"))

// renderHeader renders the top bar: app name, identity, search and tag state.
func (m *home) renderHeader() string {
	left := headerStyle.Render("StudyMeet")
	if m.busy {
		left += " " + m.spinner.View()
	}

	var right string
	if user := m.store.CurrentUser(); user != nil {
		right = headerInfoStyle.Render("signed in as ") + filterActiveStyle.Render(user.Username)
	} else {
		right = headerInfoStyle.Render("not signed in")
	}

	var filters string
	if m.state == stateSearch {
		filters = filterActiveStyle.Render("search: " + m.searchDraft + "█")
	} else if m.searchTerm != "" {
		filters = headerInfoStyle.Render("search: ") + filterActiveStyle.Render(m.searchTerm)
	}
	if m.selectedTag != "" {
		if filters != "" {
			filters += headerInfoStyle.Render("  ")
		}
		filters += headerInfoStyle.Render("tag: ") + filterActiveStyle.Render("#"+m.selectedTag)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	topRow := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return lipgloss.JoinVertical(lipgloss.Left, topRow, m.tabs.String(), filters)
}

func (m *home) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.String(), m.detail.String())

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.menu.String(),
	)

	if m.toastManager.HasActiveToasts() {
		toasts := lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.toastManager.View())
		mainView = lipgloss.JoinVertical(lipgloss.Left, toasts, mainView)
	}

	switch m.state {
	case stateCreate:
		if m.formOverlay == nil {
			log.Errorf("form overlay is nil")
			return mainView
		}
		return overlay.Center(m.formOverlay.Render(), m.width, m.height)
	case stateLogin:
		if m.loginOverlay == nil {
			log.Errorf("login overlay is nil")
			return mainView
		}
		return overlay.Center(m.loginOverlay.Render(), m.width, m.height)
	case stateHelp:
		if m.textOverlay == nil {
			log.Errorf("text overlay is nil")
			return mainView
		}
		return overlay.Center(m.textOverlay.Render(), m.width, m.height)
	case stateConfirm:
		if m.confirmOverlay == nil {
			log.Errorf("confirmation overlay is nil")
			return mainView
		}
		return overlay.Center(m.confirmOverlay.Render(), m.width, m.height)
	}

	return mainView
}

const helpText = `StudyMeet keys

  ↑/k ↓/j     move selection
  tab         switch All / Trending
  enter       join or leave the selected session
  n           create a new session
  D           delete the selected session
  s / S       sign in / sign out
  /           search title and description
  t → ←       cycle tag filter
  c           copy session details
  r           refresh now
  q           quit

Press any key to close.`
