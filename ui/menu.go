package ui

import (
	"strings"

	"studymeet/keys"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7EC8D8"))

// MenuState represents different states the menu can be in.
type MenuState int

const (
	StateDefault MenuState = iota
	// StateEmpty is shown when the directory has no visible sessions.
	StateEmpty
	// StateOverlay is shown while a form overlay has focus.
	StateOverlay
)

// menuGroup is a logical group of hotkeys rendered together, separated from
// other groups by a vertical bar.
type menuGroup struct {
	keys     []keys.KeyName
	isAction bool // action groups get a distinct highlight color
}

// menuRow is one horizontal line in the footer, composed of one or more groups.
type menuRow []menuGroup

type Menu struct {
	rows          []menuRow
	height, width int
	state         MenuState
	signedIn      bool
}

func NewMenu() *Menu {
	m := &Menu{
		state: StateEmpty,
	}
	m.updateOptions()
	return m
}

// SetState updates the menu state and options accordingly.
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetSignedIn switches the identity hotkey between sign in and sign out.
func (m *Menu) SetSignedIn(signedIn bool) {
	m.signedIn = signedIn
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	identityKey := keys.KeySignIn
	if m.signedIn {
		identityKey = keys.KeySignOut
	}

	switch m.state {
	case StateOverlay:
		m.rows = []menuRow{
			{menuGroup{keys: []keys.KeyName{keys.KeySubmitForm}}},
		}
	case StateEmpty:
		m.rows = []menuRow{
			{
				menuGroup{keys: []keys.KeyName{keys.KeyNew, identityKey}, isAction: true},
				menuGroup{keys: []keys.KeyName{keys.KeyRefresh, keys.KeyHelp, keys.KeyQuit}},
			},
		}
	default:
		m.rows = []menuRow{
			{
				menuGroup{keys: []keys.KeyName{keys.KeyToggleJoin, keys.KeyNew, keys.KeyDelete}, isAction: true},
				menuGroup{keys: []keys.KeyName{identityKey, keys.KeyCopy}},
			},
			{
				menuGroup{keys: []keys.KeyName{keys.KeySearch, keys.KeyTagNext, keys.KeyTab}},
				menuGroup{keys: []keys.KeyName{keys.KeyRefresh, keys.KeyHelp, keys.KeyQuit}},
			},
		}
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// renderRow renders a single row of grouped hotkeys into a styled string.
func (m *Menu) renderRow(row menuRow) string {
	var s strings.Builder

	for gi, group := range row {
		for ki, k := range group.keys {
			binding := keys.GlobalkeyBindings[k]

			if group.isAction {
				s.WriteString(actionGroupStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(actionGroupStyle.Render(binding.Help().Desc))
			} else {
				s.WriteString(keyStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(descStyle.Render(binding.Help().Desc))
			}

			// Separator within a group
			if ki < len(group.keys)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}

		// Separator between groups
		if gi < len(row)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	return s.String()
}

func (m *Menu) String() string {
	var renderedRows []string
	for _, row := range m.rows {
		renderedRows = append(renderedRows, menuStyle.Render(m.renderRow(row)))
	}

	joined := lipgloss.JoinVertical(lipgloss.Center, renderedRows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, joined)
}
