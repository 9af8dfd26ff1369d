package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyToggleJoin // join or leave the selected session depending on membership
	KeyNew
	KeyDelete
	KeySignIn
	KeySignOut
	KeySearch
	KeyTagNext
	KeyTagPrev
	KeyTab // Tab switches between the All and Trending collections.
	KeyRefresh
	KeyCopy
	KeyHelp
	KeyQuit

	// KeySubmitForm is a special keybinding shown while a form overlay is open.
	KeySubmitForm
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":    KeyUp,
	"k":     KeyUp,
	"down":  KeyDown,
	"j":     KeyDown,
	"enter": KeyToggleJoin,
	" ":     KeyToggleJoin,
	"n":     KeyNew,
	"D":     KeyDelete,
	"s":     KeySignIn,
	"S":     KeySignOut,
	"/":     KeySearch,
	"t":     KeyTagNext,
	"right": KeyTagNext,
	"left":  KeyTagPrev,
	"tab":   KeyTab,
	"r":     KeyRefresh,
	"c":     KeyCopy,
	"?":     KeyHelp,
	"q":     KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyToggleJoin: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "join/leave"),
	),
	KeyNew: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new session"),
	),
	KeyDelete: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete"),
	),
	KeySignIn: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sign in"),
	),
	KeySignOut: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "sign out"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	KeyTagNext: key.NewBinding(
		key.WithKeys("t", "right"),
		key.WithHelp("t/→", "next tag"),
	),
	KeyTagPrev: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev tag"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "all/trending"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeySubmitForm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
}
