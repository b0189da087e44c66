package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the slider board
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Thumb    key.Binding
	Increase key.Binding
	Decrease key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Edit     key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "j"), key.WithHelp("tab", "next slider")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "k"), key.WithHelp("shift+tab", "prev slider")),
		Thumb:    key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t", "switch thumb")),
		Increase: key.NewBinding(key.WithKeys("right", "l", "up"), key.WithHelp("→/↑", "step up")),
		Decrease: key.NewBinding(key.WithKeys("left", "h", "down"), key.WithHelp("←/↓", "step down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "L"), key.WithHelp("pgup", "+10 steps")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "H"), key.WithHelp("pgdn", "-10 steps")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "type value")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy value")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Increase, k.Decrease, k.Thumb, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Thumb},
		{k.Increase, k.Decrease, k.PageUp, k.PageDown},
		{k.Edit, k.Copy, k.Help, k.Quit},
	}
}
