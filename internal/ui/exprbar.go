package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// ExprBar is a one-line prompt for typing a whole key sequence such as
// "12+3*4" instead of pressing keys one at a time. Submitted lines are
// kept for recall with up/down.
type ExprBar struct {
	input      textinput.Model
	active     bool
	width      int
	history    []string
	historyPos int
}

// NewExprBar creates a new expression bar.
func NewExprBar() ExprBar {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ": "
	ti.Placeholder = "12+3*4="

	return ExprBar{
		input:      ti,
		historyPos: -1,
	}
}

// SetWidth sets the bar width.
func (c *ExprBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the bar.
func (c *ExprBar) Open() tea.Cmd {
	c.active = true
	c.input.Reset()
	c.historyPos = -1
	return c.input.Focus()
}

// Close deactivates the bar.
func (c *ExprBar) Close() {
	c.active = false
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the bar is open.
func (c *ExprBar) IsActive() bool {
	return c.active
}

// SetValue sets the input text and moves the cursor to the end.
func (c *ExprBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Value returns the current input text.
func (c *ExprBar) Value() string {
	return c.input.Value()
}

// Submit closes the bar and returns the trimmed input, remembering it for
// recall.
func (c *ExprBar) Submit() string {
	val := strings.TrimSpace(c.input.Value())
	if val != "" {
		c.history = append(c.history, val)
	}
	c.Close()
	return val
}

// Update processes messages for the bar.
func (c *ExprBar) Update(msg tea.Msg) (*ExprBar, tea.Cmd) {
	if !c.active {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			// Handled by the parent to run the expression.
			return c, nil
		case tea.KeyUp:
			if len(c.history) > 0 {
				if c.historyPos < len(c.history)-1 {
					c.historyPos++
				}
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			}
			return c, nil
		case tea.KeyDown:
			if c.historyPos > 0 {
				c.historyPos--
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			} else if c.historyPos == 0 {
				c.historyPos = -1
				c.input.Reset()
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the bar.
func (c *ExprBar) View() string {
	if !c.active {
		return ""
	}

	t := theme.Current

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	return barStyle.Render(c.input.View())
}
