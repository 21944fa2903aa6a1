package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode       key.Binding
	Detailed   key.Binding
	Fahrenheit key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "cycle mode"),
	),
	Detailed: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "detailed times"),
	),
	Fahrenheit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "°C/°F"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Detailed, k.Fahrenheit},
		{k.Refresh, k.Help, k.Quit},
	}
}
