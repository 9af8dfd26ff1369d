package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies which collection the list pane is showing.
type Tab int

const (
	TabAll Tab = iota
	TabTrending
)

const tabCount = 2

var tabNames = [tabCount]string{"1 All Sessions", "2 Trending"}

var (
	activeTabStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Foreground(dimColor).
				Padding(0, 1)
)

// Tabs renders the All/Trending tab bar.
type Tabs struct {
	active Tab
	width  int
}

func NewTabs() *Tabs {
	return &Tabs{active: TabAll}
}

func (t *Tabs) SetSize(width int) {
	t.width = width
}

// Active returns the selected tab.
func (t *Tabs) Active() Tab {
	return t.active
}

// Toggle switches between the two collections.
func (t *Tabs) Toggle() {
	t.active = (t.active + 1) % tabCount
}

// Set activates a specific tab. Out-of-range values are ignored.
func (t *Tabs) Set(tab Tab) {
	if tab < 0 || tab >= tabCount {
		return
	}
	t.active = tab
}

func (t *Tabs) String() string {
	rendered := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if Tab(i) == t.active {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
