package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Show a sample alert
	Info    key.Binding
	Success key.Binding
	Warning key.Binding
	Danger  key.Binding

	// Actions
	Dismiss          key.Binding
	Clear            key.Binding
	TogglePersistent key.Binding
	NextContainer    key.Binding
	PrevContainer    key.Binding
	CopyJSON         key.Binding
	CopyYAML         key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Info, k.Warning, k.Dismiss, k.NextContainer, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Info, k.Success, k.Warning, k.Danger},
		{k.Dismiss, k.Clear, k.TogglePersistent},
		{k.NextContainer, k.PrevContainer, k.CopyJSON, k.CopyYAML},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning"),
		),
		Danger: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "danger"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss newest"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear container"),
		),
		TogglePersistent: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle persistent"),
		),
		NextContainer: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next container"),
		),
		PrevContainer: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous container"),
		),
		CopyJSON: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy as JSON"),
		),
		CopyYAML: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "copy as YAML"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
