package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// HistoryPanel displays the calculation history with vim navigation.
type HistoryPanel struct {
	entries  []storage.HistoryRecord
	cursor   int
	offset   int // scroll offset for visible window
	width    int
	height   int
	visible  bool
	lastGKey bool // for gg detection within the panel

	// Rendered rows keyed by record, width, selection and theme.
	rows *lru.Cache[string, string]
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel() HistoryPanel {
	rows, _ := lru.New[string, string](4 * storage.MaxHistory)
	return HistoryPanel{rows: rows}
}

// SetEntries updates the records displayed, keeping the cursor in range.
func (hp *HistoryPanel) SetEntries(entries []storage.HistoryRecord) {
	hp.entries = entries
	if hp.cursor >= len(entries) {
		hp.cursor = len(entries) - 1
	}
	if hp.cursor < 0 {
		hp.cursor = 0
	}
	hp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
}

// Show makes the panel visible.
func (hp *HistoryPanel) Show() {
	hp.visible = true
	hp.cursor = 0
	hp.offset = 0
	hp.lastGKey = false
}

// Hide closes the panel.
func (hp *HistoryPanel) Hide() {
	hp.visible = false
	hp.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// CursorUp moves the cursor up one entry.
func (hp *HistoryPanel) CursorUp() {
	hp.lastGKey = false
	if hp.cursor > 0 {
		hp.cursor--
		hp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (hp *HistoryPanel) CursorDown() {
	hp.lastGKey = false
	if hp.cursor < len(hp.entries)-1 {
		hp.cursor++
		hp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (hp *HistoryPanel) GotoTop() {
	hp.lastGKey = false
	hp.cursor = 0
	hp.offset = 0
}

// GotoBottom moves to the last entry.
func (hp *HistoryPanel) GotoBottom() {
	hp.lastGKey = false
	if len(hp.entries) > 0 {
		hp.cursor = len(hp.entries) - 1
		hp.ensureVisible()
	}
}

// HalfPageDown moves the cursor down half a page.
func (hp *HistoryPanel) HalfPageDown() {
	hp.lastGKey = false
	step := hp.visibleCount() / 2
	if step < 1 {
		step = 1
	}
	hp.cursor += step
	if hp.cursor >= len(hp.entries) {
		hp.cursor = len(hp.entries) - 1
	}
	if hp.cursor < 0 {
		hp.cursor = 0
	}
	hp.ensureVisible()
}

// HalfPageUp moves the cursor up half a page.
func (hp *HistoryPanel) HalfPageUp() {
	hp.lastGKey = false
	step := hp.visibleCount() / 2
	if step < 1 {
		step = 1
	}
	hp.cursor -= step
	if hp.cursor < 0 {
		hp.cursor = 0
	}
	hp.ensureVisible()
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (hp *HistoryPanel) HandleGKey() bool {
	if hp.lastGKey {
		hp.GotoTop()
		return true
	}
	hp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (hp *HistoryPanel) ResetGKey() {
	hp.lastGKey = false
}

// SelectedEntry returns the entry at the cursor, or nil if empty.
func (hp *HistoryPanel) SelectedEntry() *storage.HistoryRecord {
	if len(hp.entries) == 0 || hp.cursor < 0 || hp.cursor >= len(hp.entries) {
		return nil
	}
	e := hp.entries[hp.cursor]
	return &e
}

// SelectedIndex returns the cursor index.
func (hp *HistoryPanel) SelectedIndex() int {
	return hp.cursor
}

// visibleCount returns how many entries fit in the visible area.
// Each entry takes 2 lines (equation + result), plus header and hint.
func (hp *HistoryPanel) visibleCount() int {
	available := hp.height - 4
	if available <= 0 {
		return 1
	}
	count := available / 2
	if count < 1 {
		count = 1
	}
	return count
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.cursor < hp.offset {
		hp.offset = hp.cursor
	}
	if hp.cursor >= hp.offset+visible {
		hp.offset = hp.cursor - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(hp.entries))))
	sb.WriteString("\n")

	sepWidth := hp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(hp.entries) == 0 {
		sb.WriteString(dimStyle.Render("No calculations yet."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := hp.visibleCount()
	end := hp.offset + visible
	if end > len(hp.entries) {
		end = len(hp.entries)
	}

	for i := hp.offset; i < end; i++ {
		sb.WriteString(hp.renderRow(t, hp.entries[i], i == hp.cursor))
		sb.WriteString("\n")
	}

	linesUsed := 2 + (end-hp.offset)*2
	remaining := hp.height - linesUsed
	if remaining > 1 {
		for i := 0; i < remaining-1; i++ {
			sb.WriteString("\n")
		}
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  Enter:use  d:del  D:clear  Esc:close"))
	}

	return panelStyle.Render(sb.String())
}

func (hp *HistoryPanel) renderRow(t theme.Theme, rec storage.HistoryRecord, selected bool) string {
	id := rec.ID
	if id == "" {
		id = fmt.Sprintf("%d/%s", rec.Timestamp, rec.Equation)
	}
	// TimeAgo changes by the minute, so the minute is part of the key.
	key := fmt.Sprintf("%s|%d|%t|%s|%d", id, hp.width, selected, t.Name, time.Now().Unix()/60)
	if hp.rows != nil {
		if row, ok := hp.rows.Get(key); ok {
			return row
		}
	}

	maxLen := hp.width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	equationStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	operatorStyle := lipgloss.NewStyle().Foreground(t.Operator)
	resultStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	lineStyle := lipgloss.NewStyle().Width(hp.width).Padding(0, 1)
	marker := "  "
	if selected {
		lineStyle = lineStyle.Background(t.Surface)
		resultStyle = resultStyle.Foreground(t.TextBright)
		marker = "▸ "
	}

	var eq strings.Builder
	for _, tok := range calc.TokenizeEquation(truncateLeft(rec.Equation, maxLen-2)) {
		if tok.Operator {
			eq.WriteString(operatorStyle.Render(tok.Text))
		} else {
			eq.WriteString(equationStyle.Render(tok.Text))
		}
	}

	result := truncateLeft(rec.Result, maxLen-12)
	row := lineStyle.Render(marker+eq.String()) + "\n" +
		lineStyle.Render(fmt.Sprintf("  %s  %s", resultStyle.Render(result), equationStyle.Render(storage.TimeAgo(rec.CreatedAt()))))

	if hp.rows != nil {
		hp.rows.Add(key, row)
	}
	return row
}
