package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form field indices
const (
	fieldTitle = iota
	fieldDescription
	fieldSchedule
	fieldTags
	numFields
)

var formFieldLabels = [numFields]string{"Title", "Description", "When (YYYY-MM-DDTHH:MM, optional)", "Tags (comma separated)"}

// FormOverlay is the create-session form: four fields with tab-cycled focus.
// Submission does not clear the fields; the caller resets the overlay only
// after the backend accepts the session, so a failed create keeps the user's
// input intact.
type FormOverlay struct {
	inputs    [numFields]textinput.Model
	focusIdx  int
	Title     string
	Submitted bool
	Canceled  bool
	errorText string

	width, height int
}

// NewFormOverlay creates a create-session form overlay.
func NewFormOverlay(title string) *FormOverlay {
	f := &FormOverlay{Title: title}
	placeholders := [numFields]string{"Session Title", "Description", "", ""}
	for i := 0; i < numFields; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 48
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *FormOverlay) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetError shows an inline error under the fields, e.g. a validation
// rejection or a failed create.
func (f *FormOverlay) SetError(msg string) {
	f.errorText = msg
	// Submission state is sticky only on success; allow retrying.
	f.Submitted = false
}

// Values returns the raw field contents in field order: title, description,
// schedule, tags.
func (f *FormOverlay) Values() (title, description, schedule, tags string) {
	return f.inputs[fieldTitle].Value(),
		f.inputs[fieldDescription].Value(),
		f.inputs[fieldSchedule].Value(),
		f.inputs[fieldTags].Value()
}

// Reset returns all fields to empty defaults and focuses the title.
func (f *FormOverlay) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focusIdx = fieldTitle
	f.inputs[fieldTitle].Focus()
	f.errorText = ""
	f.Submitted = false
	f.Canceled = false
}

func (f *FormOverlay) cycleFocus(delta int) {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = (f.focusIdx + delta + numFields) % numFields
	f.inputs[f.focusIdx].Focus()
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed (submitted or canceled);
// the caller decides whether submission actually succeeds.
func (f *FormOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		f.Canceled = true
		return true
	case tea.KeyTab, tea.KeyDown:
		f.cycleFocus(1)
		return false
	case tea.KeyShiftTab, tea.KeyUp:
		f.cycleFocus(-1)
		return false
	case tea.KeyEnter:
		f.Submitted = true
		return true
	default:
		if f.errorText != "" {
			f.errorText = ""
		}
		f.inputs[f.focusIdx], _ = f.inputs[f.focusIdx].Update(msg)
		return false
	}
}

// IsSubmitted returns whether the form was submitted.
func (f *FormOverlay) IsSubmitted() bool {
	return f.Submitted
}

// IsCanceled returns whether the form was canceled.
func (f *FormOverlay) IsCanceled() bool {
	return f.Canceled
}

// Render renders the form overlay.
func (f *FormOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#F0A868")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F0A868")).
		Bold(true).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	focusedLabelStyle := labelStyle.
		Foreground(lipgloss.Color("216"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginTop(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		MarginTop(1)

	content := titleStyle.Render(f.Title) + "\n"
	for i := 0; i < numFields; i++ {
		label := formFieldLabels[i]
		if i == f.focusIdx {
			content += focusedLabelStyle.Render(label)
		} else {
			content += labelStyle.Render(label)
		}
		content += "\n" + f.inputs[i].View() + "\n"
	}

	if f.errorText != "" {
		content += errorStyle.Render("Error: " + f.errorText)
	}
	content += "\n" + hintStyle.Render("tab next field • enter submit • esc cancel")

	return style.Render(content)
}
