// Package keys contains keybinding definitions for the terminal front end.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the demo front end.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Save    key.Binding
	Quit    key.Binding
}

// Default returns the default keybindings.
func Default() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save tags"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
