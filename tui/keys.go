package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	EditIP     key.Binding
	EditSubnet key.Binding
	Calculate  key.Binding
	Delete     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		EditIP: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit IP"),
		),
		EditSubnet: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "edit subnet"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calculate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditIP, k.EditSubnet, k.Calculate, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
