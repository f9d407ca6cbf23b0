package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the interview key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Toggle  key.Binding
	Newline key.Binding
	Back    key.Binding
	Quit    key.Binding

	// Completion screen
	Copy        key.Binding
	Continue    key.Binding
	Reconfigure key.Binding
	Close       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Newline:     key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "new line")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Copy:        key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Continue:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Reconfigure: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconfigure")),
		Close:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// hints renders "key action" pairs for the footer.
func hints(bindings ...key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
