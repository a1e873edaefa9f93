package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the search screen understands
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Open      key.Binding
	CopyURL   key.Binding
	Retry     key.Binding
	Focus     key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// NewKeyMap returns the default bindings
func NewKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "n", "pgdown"),
			key.WithHelp("→/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "p", "pgup"),
			key.WithHelp("←/p", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "/"),
			key.WithHelp("tab", "switch focus"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.PrevPage, k.NextPage, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.CopyURL},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Focus, k.Clear, k.Retry, k.Help, k.Quit},
	}
}

// SyncPagination enables the page bindings that can do something right now
func (k *KeyMap) SyncPagination(hasPrev, hasNext bool) {
	k.PrevPage.SetEnabled(hasPrev)
	k.FirstPage.SetEnabled(hasPrev)
	k.NextPage.SetEnabled(hasNext)
	k.LastPage.SetEnabled(hasNext)
}
