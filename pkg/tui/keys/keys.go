// Package keys defines the calendar key bindings.
package keys

import "github.com/charmbracelet/bubbles/v2/key"

// Map holds every binding of the calendar UI.
type Map struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Next      key.Binding
	Previous  key.Binding
	Today     key.Binding
	Activate  key.Binding
	Cycle     key.Binding
	CycleBack key.Binding
	Close     key.Binding
	Theme     key.Binding
	Dismiss   key.Binding
	Jump      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// Default returns the standard bindings.
func Default() Map {
	return Map{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous week"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next week"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n/]", "next month"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p/[", "previous month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", "space", " "),
			key.WithHelp("enter", "open day"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next person"),
		),
		CycleBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous person"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Theme: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle theme"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		Jump: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "jump to month"),
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

// ShortHelp is the footer summary.
func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.Activate, m.Next, m.Previous, m.Today, m.Theme, m.Help, m.Quit}
}

// DialogHelp is the footer while the dialog is open.
func (m Map) DialogHelp() []key.Binding {
	return []key.Binding{m.Cycle, m.CycleBack, m.Close}
}

// FullHelp groups every binding by area.
func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Left, m.Right, m.Up, m.Down},
		{m.Next, m.Previous, m.Today, m.Jump},
		{m.Activate, m.Cycle, m.CycleBack, m.Close},
		{m.Theme, m.Dismiss, m.Help, m.Quit},
	}
}
