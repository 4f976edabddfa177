package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the planner TUI.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Tab       key.Binding

	Submit     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding

	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Details key.Binding
	Vendors key.Binding

	Left   key.Binding
	Right  key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "plan details"),
		),
		Vendors: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "vendors"),
		),

		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
