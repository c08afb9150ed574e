package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the console.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Detail  key.Binding
	Back    key.Binding
	Refresh key.Binding
	Filter  key.Binding
	New     key.Binding

	TabTickets key.Binding
	TabAdmin   key.Binding
	TabSearch  key.Binding

	Draft    key.Binding
	Resolve  key.Binding
	CloseOut key.Binding
	Escalate key.Binding
	Submit   key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style movement next
// to arrow keys, control chords for mutations.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Detail: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "full thread"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	TabTickets: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tickets"),
	),
	TabAdmin: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "admin queue"),
	),
	TabSearch: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "search"),
	),
	Draft: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "AI draft"),
	),
	Resolve: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "resolve"),
	),
	CloseOut: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "close ticket"),
	),
	Escalate: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "cycle priority"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "send"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
