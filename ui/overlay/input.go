package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SingleLineInputOverlay represents a single-line text input overlay with
// state management. The sign-in dialog is one of these.
type SingleLineInputOverlay struct {
	textinput     textinput.Model
	Title         string
	Submitted     bool
	Canceled      bool
	errorText     string
	width, height int
}

// NewSingleLineInputOverlay creates a new single-line input overlay with the
// given title and placeholder.
func NewSingleLineInputOverlay(title string, placeholder string) *SingleLineInputOverlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return &SingleLineInputOverlay{
		textinput: ti,
		Title:     title,
	}
}

func (s *SingleLineInputOverlay) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetError sets an inline error line shown under the input.
func (s *SingleLineInputOverlay) SetError(msg string) {
	s.errorText = msg
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed.
func (s *SingleLineInputOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		s.Canceled = true
		return true
	case tea.KeyEnter:
		s.Submitted = true
		return true
	default:
		// Clear the error once the user edits again.
		if s.errorText != "" {
			s.errorText = ""
		}
		s.textinput, _ = s.textinput.Update(msg)
		return false
	}
}

// GetValue returns the current value of the text input.
func (s *SingleLineInputOverlay) GetValue() string {
	return s.textinput.Value()
}

// IsSubmitted returns whether the form was submitted.
func (s *SingleLineInputOverlay) IsSubmitted() bool {
	return s.Submitted
}

// IsCanceled returns whether the form was canceled.
func (s *SingleLineInputOverlay) IsCanceled() bool {
	return s.Canceled
}

// Render renders the single-line input overlay.
func (s *SingleLineInputOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#F0A868")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F0A868")).
		Bold(true).
		MarginBottom(1)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginTop(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginTop(1)

	content := titleStyle.Render(s.Title) + "\n"
	content += s.textinput.View()
	if s.errorText != "" {
		content += "\n" + errorStyle.Render("Error: "+s.errorText)
	}
	content += "\n" + hintStyle.Render("enter submit • esc cancel")

	return style.Render(content)
}
