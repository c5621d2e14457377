package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Status bar modes.
const (
	ModeCalc    = "CALC"
	ModeHistory = "HISTORY"
	ModeHelp    = "HELP"
	ModeInput   = "INPUT"
	ModeTheme   = "THEME"
)

// StatusBar shows the mode, a transient message, the theme name and the
// history size at the bottom of the screen.
type StatusBar struct {
	mode         string
	message      string // temporary status message
	isError      bool
	historyCount int
	width        int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: ModeCalc,
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator.
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the current mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary status message styled as an error.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetHistoryCount sets the number of stored calculations.
func (s *StatusBar) SetHistoryCount(n int) {
	s.historyCount = n
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	var modeIcon string
	switch s.mode {
	case ModeCalc:
		modeStyle = modeStyle.Background(t.Primary)
		modeIcon = "🧮 "
	case ModeHistory:
		modeStyle = modeStyle.Background(t.Secondary)
		modeIcon = "📜 "
	case ModeHelp:
		modeStyle = modeStyle.Background(t.Accent)
		modeIcon = "? "
	case ModeInput:
		modeStyle = modeStyle.Background(t.Success)
		modeIcon = "✏ "
	case ModeTheme:
		modeStyle = modeStyle.Background(t.Warning)
		modeIcon = "◐ "
	default:
		modeStyle = modeStyle.Background(t.Secondary)
	}
	mode := modeStyle.Render(modeIcon + s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	if s.message != "" {
		color := t.Info
		if s.isError {
			color = t.Error
		}
		left = lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.message)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)
	right := rightStyle.Render(fmt.Sprintf("%d saved", s.historyCount))

	themeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Background(t.Surface).
		Padding(0, 1)
	right += themeStyle.Render("◐ " + t.Name)

	modeWidth := lipgloss.Width(mode)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacerWidth := s.width - modeWidth - leftWidth - rightWidth
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	spacerStyle := lipgloss.NewStyle().
		Background(t.Surface)
	spacer := spacerStyle.Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
