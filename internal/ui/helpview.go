package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	cachedRendererStyle string
	rendererMu          sync.Mutex
)

// HelpView wraps bubbles/viewport to show the keybinding reference rendered
// from markdown.
type HelpView struct {
	viewport viewport.Model
	ready    bool
	markdown string
	rendered string
	theme    string
}

// NewHelpView creates a new help view (dimensions set on first WindowSizeMsg).
func NewHelpView() HelpView {
	return HelpView{}
}

// SetSize updates the viewport dimensions and re-renders for the new width.
func (hv *HelpView) SetSize(width, height int) {
	if !hv.ready {
		hv.viewport = viewport.New(width, height)
		hv.viewport.MouseWheelEnabled = true
		hv.viewport.MouseWheelDelta = 3
		hv.ready = true
	} else {
		hv.viewport.Width = width
		hv.viewport.Height = height
	}
	hv.render()
}

// SetMarkdown replaces the help text.
func (hv *HelpView) SetMarkdown(md string) {
	hv.markdown = md
	hv.render()
}

// Refresh re-renders if the theme changed since the last render.
func (hv *HelpView) Refresh() {
	if hv.theme != theme.Current.Name {
		hv.render()
	}
}

// Rendered returns the styled help text.
func (hv *HelpView) Rendered() string {
	return hv.rendered
}

func (hv *HelpView) render() {
	if !hv.ready || hv.markdown == "" {
		return
	}
	width := hv.viewport.Width - 2
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}

	out, err := renderMarkdown(hv.markdown, width)
	if err != nil {
		out = hv.markdown
	}
	hv.rendered = out
	hv.theme = theme.Current.Name
	hv.viewport.SetContent(out)
	hv.viewport.GotoTop()
}

// renderMarkdown renders markdown with glamour using the style matching the
// active theme's background.
func renderMarkdown(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	style := styles.DarkStyle
	if !theme.Current.Dark {
		style = styles.LightStyle
	}

	if cachedRenderer == nil || cachedRendererWidth != width || cachedRendererStyle != style {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
		cachedRendererStyle = style
	}

	return cachedRenderer.Render(markdown)
}

// Update forwards messages to the viewport.
func (hv *HelpView) Update(msg tea.Msg) (*HelpView, tea.Cmd) {
	if !hv.ready {
		return hv, nil
	}
	var cmd tea.Cmd
	hv.viewport, cmd = hv.viewport.Update(msg)
	return hv, cmd
}

// View renders the viewport with a scroll indicator.
func (hv *HelpView) View() string {
	if !hv.ready {
		return "\n  Initializing..."
	}
	t := theme.Current
	info := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%s  j/k:scroll  Esc:close", hv.ScrollInfo()))
	return hv.viewport.View() + "\n" + info
}

// ScrollPercent returns the scroll percentage.
func (hv *HelpView) ScrollPercent() float64 {
	if !hv.ready {
		return 0
	}
	return hv.viewport.ScrollPercent()
}

// ScrollInfo returns a string like "42%" or "TOP" or "BOT".
func (hv *HelpView) ScrollInfo() string {
	pct := hv.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// LineDown scrolls down n lines.
func (hv *HelpView) LineDown(n int) {
	if hv.ready {
		hv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (hv *HelpView) LineUp(n int) {
	if hv.ready {
		hv.viewport.LineUp(n)
	}
}

// Ready reports whether the viewport has been initialized.
func (hv *HelpView) Ready() bool {
	return hv.ready
}

// PlainKeyTable formats key/description pairs as a markdown table.
func PlainKeyTable(rows [][2]string) string {
	var sb strings.Builder
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", r[0], r[1])
	}
	return sb.String()
}
