package overlay

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// Display constants. Errors stay up longer so failure notices are readable.
const (
	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second
	ErrorDismissAfter   = 5 * time.Second

	MinToastWidth = 30
	MaxToastWidth = 55
	MaxToasts     = 4
)

// idCounter is a global atomic counter used to generate unique toast IDs.
var idCounter atomic.Uint64

// toast represents a single toast notification.
type toast struct {
	ID        string
	Type      ToastType
	Message   string
	ExpiresAt time.Time
}

// ToastManager manages the collection of active toast notifications.
type ToastManager struct {
	toasts []*toast
	width  int
	height int
}

// NewToastManager creates a new ToastManager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		toasts: make([]*toast, 0),
	}
}

// SetSize updates the available viewport dimensions for toast positioning.
func (tm *ToastManager) SetSize(width, height int) {
	tm.width = width
	tm.height = height
}

// toastWidth returns the dynamic toast width based on the viewport.
func (tm *ToastManager) toastWidth() int {
	w := tm.width * 40 / 100
	if w < MinToastWidth {
		return MinToastWidth
	}
	if w > MaxToastWidth {
		return MaxToastWidth
	}
	return w
}

// Info creates an informational toast and returns its ID.
func (tm *ToastManager) Info(msg string) string {
	return tm.addToast(ToastInfo, msg, InfoDismissAfter)
}

// Success creates a success toast and returns its ID.
func (tm *ToastManager) Success(msg string) string {
	return tm.addToast(ToastSuccess, msg, SuccessDismissAfter)
}

// Error creates an error toast and returns its ID.
func (tm *ToastManager) Error(msg string) string {
	return tm.addToast(ToastError, msg, ErrorDismissAfter)
}

// HasActiveToasts returns true if any toast is still on screen.
func (tm *ToastManager) HasActiveToasts() bool {
	return len(tm.toasts) > 0
}

// nextID generates a unique toast ID using an atomic counter.
func nextID() string {
	n := idCounter.Add(1)
	return fmt.Sprintf("toast-%d", n)
}

// addToast creates a new toast, enforces the MaxToasts cap, appends it, and
// returns the generated ID.
func (tm *ToastManager) addToast(typ ToastType, msg string, duration time.Duration) string {
	t := &toast{
		ID:        nextID(),
		Type:      typ,
		Message:   msg,
		ExpiresAt: time.Now().Add(duration),
	}

	for len(tm.toasts) >= MaxToasts {
		tm.toasts = tm.toasts[1:]
	}
	tm.toasts = append(tm.toasts, t)
	return t.ID
}

// Tick drops expired toasts.
func (tm *ToastManager) Tick() {
	now := time.Now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Before(t.ExpiresAt) {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

// toastColor returns the color string associated with a toast type.
func toastColor(typ ToastType) string {
	switch typ {
	case ToastSuccess:
		return "#A8D8A8"
	case ToastError:
		return "#FF6B6B"
	default:
		return "#7EC8D8"
	}
}

// toastIcon returns a styled icon string for the given toast type.
func toastIcon(typ ToastType) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(toastColor(typ)))
	switch typ {
	case ToastSuccess:
		return style.Render("✓")
	case ToastError:
		return style.Render("✗")
	default:
		return style.Render("▸")
	}
}

// renderToast renders a single toast notification as a styled string.
func (tm *ToastManager) renderToast(t *toast) string {
	tw := tm.toastWidth()
	icon := toastIcon(t.Type)
	// tw - 4 accounts for border (2) + padding (2), then subtract icon width + space.
	maxMsgWidth := tw - 4 - lipgloss.Width(icon) - 1
	if maxMsgWidth < 10 {
		maxMsgWidth = 10
	}
	msg := wordwrap.String(t.Message, maxMsgWidth)
	// Indent wrapped lines to align with the first line (after the icon).
	lines := strings.Split(msg, "\n")
	indent := strings.Repeat(" ", lipgloss.Width(icon)+1)
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	content := icon + " " + strings.Join(lines, "\n")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(toastColor(t.Type))).
		Padding(0, 1).
		Width(tw)
	return style.Render(content)
}

// View renders all active toasts stacked vertically.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	var rendered []string
	for _, t := range tm.toasts {
		rendered = append(rendered, tm.renderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
