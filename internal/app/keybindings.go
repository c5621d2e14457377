package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for tcalc.
type KeyMap struct {
	// Entry
	Digit      key.Binding
	Decimal    key.Binding
	Add        key.Binding
	Subtract   key.Binding
	Multiply   key.Binding
	Divide     key.Binding
	Evaluate   key.Binding
	Backspace  key.Binding
	Clear      key.Binding
	Percent    key.Binding
	ToggleSign key.Binding

	// History panel
	HistoryToggle key.Binding
	Up            key.Binding
	Down          key.Binding
	HalfPageDown  key.Binding
	HalfPageUp    key.Binding
	GotoBottom    key.Binding
	Select        key.Binding
	Delete        key.Binding
	DeleteAll     key.Binding
	Close         key.Binding

	// Actions
	ExprInput   key.Binding
	ThemePicker key.Binding
	ThemeToggle key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Decimal: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "decimal point"),
		),
		Add: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add"),
		),
		Subtract: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "subtract"),
		),
		Multiply: key.NewBinding(
			key.WithKeys("*", "x"),
			key.WithHelp("*", "multiply"),
		),
		Divide: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "divide"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete digit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c", "C"),
			key.WithHelp("esc/c", "clear"),
		),
		Percent: key.NewBinding(
			key.WithKeys("%"),
			key.WithHelp("%", "percent"),
		),
		ToggleSign: key.NewBinding(
			key.WithKeys("n", "_"),
			key.WithHelp("n", "toggle sign"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "history"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use calculation"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete entry"),
		),
		DeleteAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "h", "H"),
			key.WithHelp("esc", "close"),
		),
		ExprInput: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "type expression"),
		),
		ThemePicker: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "choose theme"),
		),
		ThemeToggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.HistoryToggle, k.ThemeToggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Decimal, k.Add, k.Subtract, k.Multiply, k.Divide},
		{k.Evaluate, k.Backspace, k.Clear, k.Percent, k.ToggleSign},
		{k.HistoryToggle, k.Up, k.Down, k.HalfPageDown, k.HalfPageUp, k.GotoBottom},
		{k.Select, k.Delete, k.DeleteAll, k.Close},
		{k.ExprInput, k.ThemeToggle, k.ThemePicker, k.Help, k.Quit},
	}
}
