package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// DisplayState is the part of the engine the display renders.
type DisplayState struct {
	Expression  []calc.Token
	Value       string // already grouped
	IsError     bool
	ResultShown bool
}

// Display renders the expression line above the current value.
type Display struct {
	width int
}

// NewDisplay creates a new display.
func NewDisplay() Display {
	return Display{width: 30}
}

// SetWidth sets the display width including its border.
func (d *Display) SetWidth(w int) {
	if w < 12 {
		w = 12
	}
	d.width = w
}

// Width returns the display width.
func (d *Display) Width() int {
	return d.width
}

// View renders the display for the given state.
func (d *Display) View(s DisplayState) string {
	t := theme.Current
	inner := d.width - 4 // border + padding

	operandStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)
	operatorStyle := lipgloss.NewStyle().
		Foreground(t.Operator).
		Bold(true)

	var expr strings.Builder
	for _, tok := range s.Expression {
		if tok.Operator {
			expr.WriteString(operatorStyle.Render(tok.Text))
		} else {
			expr.WriteString(operandStyle.Render(tok.Text))
		}
	}
	exprLine := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Right).
		Render(truncateLeft(expr.String(), inner))

	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TextBright).
		Width(inner).
		Align(lipgloss.Right)
	switch {
	case s.IsError:
		valueStyle = valueStyle.Foreground(t.Error)
	case s.ResultShown:
		valueStyle = valueStyle.Foreground(t.Result).Underline(true)
	}
	valueLine := valueStyle.Render(truncateLeft(s.Value, inner))

	border := t.Border
	if s.ResultShown && !s.IsError {
		border = t.BorderFocus
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(t.Surface).
		Padding(0, 1)

	return boxStyle.Render(exprLine + "\n" + valueLine)
}

// truncateLeft keeps the rightmost part of s that fits in width cells,
// marking the cut with an ellipsis. The newest input is on the right.
func truncateLeft(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width("…"+string(runes)) > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}
