package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Jobs      key.Binding
	Companies key.Binding

	// Actions
	Select key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Paid   key.Binding
	Search key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Jobs:      key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "jobs")),
	Companies: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "companies")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Paid:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle paid")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
