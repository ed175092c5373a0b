package adapter_bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor keybindings. Bindings other than Escape and the
// insert-mode keys apply in Normal and Select mode.
type KeyMap struct {
	// Modes
	Insert     key.Binding
	Select     key.Binding
	SelectLine key.Binding
	Escape     key.Binding
	Command    key.Binding

	// Motion
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextWord  key.Binding
	WordEnd   key.Binding
	PrevWord  key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	// Viewport
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Actions
	Remove key.Binding
	Yank   key.Binding
	Help   key.Binding

	// Insert mode
	Newline   key.Binding
	Backspace key.Binding
	Tab       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Select: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select"),
		),
		SelectLine: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "select lines"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		NextWord: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "next word"),
		),
		WordEnd: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "word end"),
		),
		PrevWord: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$", "line end"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("a", "ctrl+y"),
			key.WithHelp("a", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("s", "ctrl+e"),
			key.WithHelp("s", "scroll down"),
		),

		Remove: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Select, k.SelectLine, k.Remove, k.Yank, k.Command, k.Help}
}

// FullHelp returns all bindings grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Insert, k.Select, k.SelectLine, k.Escape, k.Command},
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextWord, k.WordEnd, k.PrevWord, k.LineStart, k.LineEnd},
		{k.ScrollUp, k.ScrollDown, k.Remove, k.Yank, k.Help},
	}
}
