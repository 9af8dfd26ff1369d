package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Center places content in the middle of a width×height viewport by padding
// it with blank lines and spaces.
func Center(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	contentHeight := len(lines)
	contentWidth := 0

	// Find the widest line
	for _, line := range lines {
		if lineWidth := lipgloss.Width(line); lineWidth > contentWidth {
			contentWidth = lineWidth
		}
	}

	verticalOffset := (height - contentHeight) / 2
	if verticalOffset < 0 {
		verticalOffset = 0
	}

	horizontalOffset := (width - contentWidth) / 2
	if horizontalOffset < 0 {
		horizontalOffset = 0
	}

	var result strings.Builder
	for i := 0; i < verticalOffset; i++ {
		result.WriteString("\n")
	}

	pad := strings.Repeat(" ", horizontalOffset)
	for _, line := range lines {
		result.WriteString(pad)
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
