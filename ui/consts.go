package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#F0A868")
	dimColor    = lipgloss.AdaptiveColor{Light: "#7A7474", Dark: "#9C9494"}
	errColor    = lipgloss.Color("#FF6B6B")
	okColor     = lipgloss.Color("#A8D8A8")
	infoColor   = lipgloss.Color("#7EC8D8")
)
