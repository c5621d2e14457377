package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// ButtonKind groups keypad buttons for styling.
type ButtonKind int

const (
	ButtonDigit ButtonKind = iota
	ButtonFunction
	ButtonOperator
	ButtonEquals
)

// Button is one keypad cell.
type Button struct {
	Label string
	Kind  ButtonKind
}

// Keypad labels. The app maps input events to these to highlight presses.
const (
	LabelClear      = "C"
	LabelBackspace  = "⌫"
	LabelPercent    = "%"
	LabelToggleSign = "±"
	LabelDecimal    = "."
	LabelEquals     = "="
)

var keypadRows = [][]Button{
	{{LabelClear, ButtonFunction}, {LabelBackspace, ButtonFunction}, {LabelPercent, ButtonFunction}, {"÷", ButtonOperator}},
	{{"7", ButtonDigit}, {"8", ButtonDigit}, {"9", ButtonDigit}, {"×", ButtonOperator}},
	{{"4", ButtonDigit}, {"5", ButtonDigit}, {"6", ButtonDigit}, {"−", ButtonOperator}},
	{{"1", ButtonDigit}, {"2", ButtonDigit}, {"3", ButtonDigit}, {"+", ButtonOperator}},
	{{LabelToggleSign, ButtonFunction}, {"0", ButtonDigit}, {LabelDecimal, ButtonDigit}, {LabelEquals, ButtonEquals}},
}

// Keypad renders the button grid and highlights the last pressed button.
type Keypad struct {
	width   int
	pressed string
}

// NewKeypad creates a keypad.
func NewKeypad() Keypad {
	return Keypad{width: 30}
}

// SetWidth sets the total keypad width.
func (k *Keypad) SetWidth(w int) {
	if w < 12 {
		w = 12
	}
	k.width = w
}

// Press highlights the button with the given label.
func (k *Keypad) Press(label string) {
	k.pressed = label
}

// Release clears the highlight if label is still the pressed button.
func (k *Keypad) Release(label string) {
	if k.pressed == label {
		k.pressed = ""
	}
}

// Pressed returns the highlighted label, if any.
func (k *Keypad) Pressed() string {
	return k.pressed
}

// Rows returns the keypad layout.
func (k *Keypad) Rows() [][]Button {
	return keypadRows
}

// View renders the keypad.
func (k *Keypad) View() string {
	t := theme.Current
	cellWidth := k.width / 4
	if cellWidth < 3 {
		cellWidth = 3
	}

	var rows []string
	for _, row := range k.Rows() {
		var cells []string
		for _, b := range row {
			cells = append(cells, k.renderButton(t, b, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (k *Keypad) renderButton(t theme.Theme, b Button, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(t.Text)

	switch b.Kind {
	case ButtonFunction:
		style = style.Background(t.KeyFunction).Foreground(t.Secondary)
	case ButtonOperator:
		style = style.Background(t.KeyOperator).Foreground(t.TextBright).Bold(true)
	case ButtonEquals:
		style = style.Background(t.KeyEquals).Foreground(t.TextBright).Bold(true)
	default:
		style = style.Background(t.KeyDigit)
	}

	if b.Label == k.Pressed() {
		style = style.Background(t.KeyPressed).Foreground(t.Background).Bold(true)
	}

	return style.Render(b.Label)
}
