package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the calculator.
type KeyMap struct {
	Eval       key.Binding
	NextEngine key.Binding
	PrevEngine key.Binding
	HistPrev   key.Binding
	HistNext   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings. Printable keys are left to
// the input line.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Eval:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
		NextEngine: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next engine")),
		PrevEngine: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous engine")),
		HistPrev:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous input")),
		HistNext:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next input")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Help:       key.NewBinding(key.WithKeys("f1", "ctrl+g"), key.WithHelp("f1", "help")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Eval, k.NextEngine, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Eval, k.NextEngine, k.PrevEngine},
		{k.HistPrev, k.HistNext, k.PageUp, k.PageDown},
		{k.Clear, k.Help, k.Quit},
	}
}
