package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	logout   key.Binding
	edit     key.Binding
	theme    key.Binding
	online   key.Binding
	contrast key.Binding
	copy     key.Binding
	version key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	logout:   key.NewBinding(key.WithKeys("l")),
	edit:     key.NewBinding(key.WithKeys("e")),
	theme:    key.NewBinding(key.WithKeys("t")),
	online:   key.NewBinding(key.WithKeys("o")),
	contrast: key.NewBinding(key.WithKeys("h")),
	copy:     key.NewBinding(key.WithKeys("c")),
	version: key.NewBinding(key.WithKeys("v")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n")),
}

func keyMatches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
