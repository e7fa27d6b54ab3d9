package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Delete   key.Binding
	Salary   key.Binding
	Goal     key.Binding
	Range    key.Binding
	Settings key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
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
			key.WithHelp("space", "start/end work"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add wish"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete wish"),
		),
		Salary: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "annual salary"),
		),
		Goal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "savings goal"),
		),
		Range: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "week/month"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload config"),
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

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "space start/end  s settings  t week/month  ? help  q quit"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"space/enter", "Start or end the work day"},
		{"s", "Show/hide settings and wishlist"},
		{"↑/k ↓/j", "Move in the wishlist"},
		{"a", "Add a wish (name, then price)"},
		{"d", "Delete wish (with confirmation)"},
		{"$", "Set annual salary"},
		{"g", "Set savings goal (0 clears)"},
		{"t", "Toggle week/month total"},
		{"R", "Reload config file"},
		{"?", "Toggle help"},
		{"q", "Quit (a running day is not paid)"},
	}
}
