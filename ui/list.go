package ui

import (
	"fmt"
	"strings"

	"studymeet/api"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	listTitleStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("255"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2A2A2A", Dark: "#DDDDDD"})

	joinedMarkStyle = lipgloss.NewStyle().Foreground(okColor)

	countStyle = lipgloss.NewStyle().Foreground(dimColor)

	emptyStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)
)

// List renders the visible sessions of the active collection and tracks the
// selection. It holds no session state of its own beyond what the app model
// hands it each update.
type List struct {
	sessions      []api.Session
	selectedIdx   int
	height, width int

	// hasJoined is the membership derivation, recomputed every render from
	// current store + identity. It is never cached here.
	hasJoined func(*api.Session) bool

	emptyMessage string
}

func NewList(hasJoined func(*api.Session) bool) *List {
	return &List{
		hasJoined:    hasJoined,
		emptyMessage: "No sessions found",
	}
}

// SetSize sets the height and width of the list.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetEmptyMessage sets the placeholder shown when the list has no sessions.
func (l *List) SetEmptyMessage(msg string) {
	l.emptyMessage = msg
}

// SetSessions replaces the rendered sessions, clamping the selection.
func (l *List) SetSessions(sessions []api.Session) {
	l.sessions = sessions
	if l.selectedIdx >= len(l.sessions) {
		l.selectedIdx = len(l.sessions) - 1
	}
	if l.selectedIdx < 0 {
		l.selectedIdx = 0
	}
}

func (l *List) NumSessions() int {
	return len(l.sessions)
}

// Up selects the prev item in the list.
func (l *List) Up() {
	if len(l.sessions) == 0 {
		return
	}
	if l.selectedIdx > 0 {
		l.selectedIdx--
	}
}

// Down selects the next item in the list.
func (l *List) Down() {
	if len(l.sessions) == 0 {
		return
	}
	if l.selectedIdx < len(l.sessions)-1 {
		l.selectedIdx++
	}
}

// Selected returns the currently selected session, or nil when empty.
func (l *List) Selected() *api.Session {
	if len(l.sessions) == 0 {
		return nil
	}
	return &l.sessions[l.selectedIdx]
}

// renderRow renders one session as a single list line.
func (l *List) renderRow(s *api.Session, selected bool) string {
	mark := "  "
	if l.hasJoined != nil && l.hasJoined(s) {
		mark = joinedMarkStyle.Render("✓ ")
	}

	count := countStyle.Render(fmt.Sprintf(" %d", len(s.ParticipantUsernames)))

	// Width left for the title: marker (2) + count + padding.
	avail := l.width - 2 - lipgloss.Width(count) - 2
	if avail < 8 {
		avail = 8
	}
	title := runewidth.Truncate(s.Title, avail, "…")
	title = runewidth.FillRight(title, avail)

	line := mark + title + count
	if selected {
		return selectedRowStyle.Render(line)
	}
	return rowStyle.Render(line)
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteString(listTitleStyle.Render("Sessions"))
	b.WriteString("\n\n")

	if len(l.sessions) == 0 {
		b.WriteString(emptyStyle.Render(l.emptyMessage))
		return lipgloss.NewStyle().Width(l.width).Height(l.height).Render(b.String())
	}

	// Keep the selection visible when the list is taller than the pane.
	visibleRows := l.height - 3
	if visibleRows < 1 {
		visibleRows = 1
	}
	start := 0
	if l.selectedIdx >= visibleRows {
		start = l.selectedIdx - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(l.sessions) {
		end = len(l.sessions)
	}

	for i := start; i < end; i++ {
		b.WriteString(l.renderRow(&l.sessions[i], i == l.selectedIdx))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(l.width).Height(l.height).Render(b.String())
}
