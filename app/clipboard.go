package app

import (
	"fmt"
	"strings"
	"time"

	"studymeet/api"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// sessionSummary formats a session as a plain-text blurb suitable for pasting
// into a chat or calendar invite.
func sessionSummary(s *api.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title)
	if s.CreatorUsername != "" {
		fmt.Fprintf(&b, "by %s\n", s.CreatorUsername)
	}
	fmt.Fprintf(&b, "\n%s\n", s.Description)
	if s.DateTime != nil {
		fmt.Fprintf(&b, "\nWhen: %s\n", s.DateTime.Local().Format(time.RFC1123))
	}
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(s.Tags, ", "))
	}
	fmt.Fprintf(&b, "Participants: %d\n", len(s.ParticipantUsernames))
	return b.String()
}

// copySelected copies the selected session's summary to the system clipboard.
func (m *home) copySelected() tea.Cmd {
	selected := m.list.Selected()
	if selected == nil {
		return nil
	}
	if err := clipboard.WriteAll(sessionSummary(selected)); err != nil {
		return m.notifyError(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.notifyInfo("Copied '" + selected.Title + "' to clipboard")
}
