package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// ThemePicker is a popup listing the available themes. Each theme is
// chosen by its number.
type ThemePicker struct {
	visible bool
	names   []string
}

// NewThemePicker creates a picker over all registered themes.
func NewThemePicker() ThemePicker {
	return ThemePicker{names: theme.List()}
}

// Show makes the picker visible.
func (tp *ThemePicker) Show() {
	tp.visible = true
}

// Hide closes the picker.
func (tp *ThemePicker) Hide() {
	tp.visible = false
}

// IsVisible reports whether the picker is shown.
func (tp *ThemePicker) IsVisible() bool {
	return tp.visible
}

// Choose returns the theme bound to the pressed key ("1", "2", ...).
func (tp *ThemePicker) Choose(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	n := int(key[0] - '0')
	if n > len(tp.names) {
		return "", false
	}
	return tp.names[n-1], true
}

// View renders the picker as a bordered box.
func (tp *ThemePicker) View() string {
	if !tp.visible {
		return ""
	}

	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	keyBadgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Secondary).
		Padding(0, 1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	lines := []string{titleStyle.Render("◐ Theme"), ""}
	for i, name := range tp.names {
		label := " " + name
		if name == t.Name {
			label += " ●"
		}
		lines = append(lines, keyBadgeStyle.Render(fmt.Sprint(i+1))+descStyle.Render(label))
	}
	lines = append(lines, "", dimStyle.Render("press a number or Esc"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	return boxStyle.Render(strings.Join(lines, "\n"))
}
