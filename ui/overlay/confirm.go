package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay is a y/n modal for destructive actions.
type ConfirmationOverlay struct {
	// Dismissed is set once the user answered either way.
	Dismissed bool
	// OnConfirm runs when the user confirms.
	OnConfirm func()
	// OnCancel runs when the user declines or escapes.
	OnCancel func()

	message string
	width   int
}

// NewConfirmationOverlay creates a confirmation modal with the given message.
func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message: message,
		width:   50,
	}
}

func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// HandleKeyPress processes a key press. Returns true if the overlay should be
// closed.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "Y":
		c.Dismissed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case "n", "N", "esc", "q":
		c.Dismissed = true
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	}
	return false
}

// Render renders the confirmation modal.
func (c *ConfirmationOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#de613e")).
		Padding(1, 2).
		Width(c.width)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginTop(1)

	content := c.message + "\n" + hintStyle.Render("y confirm • n cancel")
	return style.Render(content)
}
