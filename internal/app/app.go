package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/logfields"
	"github.com/vidyasagar/tcalc/internal/metrics"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
	"github.com/vidyasagar/tcalc/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeCalc    Mode = iota
	ModeHistory      // history panel active
	ModeHelp         // keybinding reference shown
	ModeInput        // expression bar focused
	ModeTheme        // theme picker shown
)

// keyReleaseDelay is how long a keypad button stays highlighted.
const keyReleaseDelay = 120 * time.Millisecond

// Options configures a Model. Zero values fall back to an in-memory history,
// no metrics and a discarding logger.
type Options struct {
	History *storage.HistoryLog
	Metrics metrics.Recorder
	Logger  *slog.Logger
	// Config, when set, receives theme changes made with the toggle key.
	Config *storage.Config
}

// Model is the top-level bubbletea model for tcalc.
type Model struct {
	// UI components
	display      ui.Display
	keypad       ui.Keypad
	historyPanel ui.HistoryPanel
	statusBar    ui.StatusBar
	exprBar      ui.ExprBar
	themePicker  ui.ThemePicker
	helpView     ui.HelpView
	help         help.Model

	engine  *calc.Engine
	history *storage.HistoryLog
	metrics metrics.Recorder
	logger  *slog.Logger
	config  *storage.Config

	keys   KeyMap
	mode   Mode
	width  int
	height int
	ready  bool
}

// keyReleaseMsg clears the keypad highlight for label.
type keyReleaseMsg struct {
	label string
}

// ThemeChangedMsg switches the active theme, typically after the config file
// was edited.
type ThemeChangedMsg struct {
	Name string
}

// New creates a new tcalc Model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	history := opts.History
	if history == nil {
		history = storage.NewHistoryLog(storage.NewMemoryKV(), storage.DefaultHistoryKey, logger)
	}
	history.OnChange(rec.SetHistorySize)

	m := Model{
		display:      ui.NewDisplay(),
		keypad:       ui.NewKeypad(),
		historyPanel: ui.NewHistoryPanel(),
		statusBar:    ui.NewStatusBar(),
		exprBar:      ui.NewExprBar(),
		themePicker:  ui.NewThemePicker(),
		helpView:     ui.NewHelpView(),
		help:         help.New(),
		engine:       calc.NewEngine(history),
		history:      history,
		metrics:      rec,
		logger:       logger,
		config:       opts.Config,
		keys:         DefaultKeyMap(),
		mode:         ModeCalc,
	}
	m.helpView.SetMarkdown(helpMarkdown(m.keys))
	m.syncHistory()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("tcalc")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case keyReleaseMsg:
		m.keypad.Release(msg.label)
		return m, nil

	case ThemeChangedMsg:
		if msg.Name != theme.Current.Name {
			if !theme.Set(msg.Name) {
				m.statusBar.SetError(fmt.Sprintf("Unknown theme %q", msg.Name))
				return m, nil
			}
			m.logger.Info("Theme changed", logfields.Theme(msg.Name))
			m.helpView.Refresh()
			m.statusBar.SetMessage("Theme: " + msg.Name)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeHelp:
		_, cmd = m.helpView.Update(msg)
	case ModeInput:
		_, cmd = m.exprBar.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tcalc..."
	}

	t := theme.Current
	bodyHeight := m.bodyHeight()
	mainWidth := m.mainWidth()

	var main string
	if m.mode == ModeHelp {
		main = m.helpView.View()
	} else {
		calculator := lipgloss.JoinVertical(lipgloss.Center,
			m.display.View(m.displayState()),
			m.keypad.View(),
		)
		main = lipgloss.Place(mainWidth, bodyHeight, lipgloss.Center, lipgloss.Center, calculator,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(t.Background),
		)
	}

	body := main
	if m.historyPanel.IsVisible() {
		dividerStyle := lipgloss.NewStyle().
			Foreground(t.Border)
		dividerLines := make([]string, bodyHeight)
		for i := range dividerLines {
			dividerLines[i] = "│"
		}
		divider := dividerStyle.Render(strings.Join(dividerLines, "\n"))

		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.historyPanel.View(),
			divider,
			main,
		)
	}

	helpLine := lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys))

	sections := []string{body, helpLine, m.statusBar.View()}
	if m.exprBar.IsActive() {
		sections = append(sections, m.exprBar.View())
	}
	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay the theme picker if active.
	if m.themePicker.IsVisible() {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.themePicker.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(t.Background),
		)
	}

	return result
}

func (m Model) displayState() ui.DisplayState {
	return ui.DisplayState{
		Expression:  m.engine.ExpressionTokens(),
		Value:       m.engine.Display(),
		IsError:     m.engine.IsError(),
		ResultShown: m.engine.ResultShown(),
	}
}

// bodyHeight is the height left after the help line, status bar and
// expression bar.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if m.exprBar.IsActive() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) panelWidth() int {
	if !m.historyPanel.IsVisible() {
		return 0
	}
	w := m.width * 35 / 100
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) mainWidth() int {
	w := m.width
	if pw := m.panelWidth(); pw > 0 {
		w -= pw + 1 // divider
	}
	if w < 1 {
		w = 1
	}
	return w
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.exprBar.SetWidth(m.width)
	m.help.Width = m.width - 2

	bodyHeight := m.bodyHeight()
	mainWidth := m.mainWidth()
	if pw := m.panelWidth(); pw > 0 {
		m.historyPanel.SetSize(pw, bodyHeight)
	}

	calcWidth := mainWidth - 2
	if calcWidth > 40 {
		calcWidth = 40
	}
	m.display.SetWidth(calcWidth)
	m.keypad.SetWidth(m.display.Width())

	m.helpView.SetSize(mainWidth, bodyHeight-1) // scroll info line
}

// syncHistory pushes the history log into the panel and status bar.
func (m *Model) syncHistory() {
	m.historyPanel.SetEntries(m.history.List())
	m.statusBar.SetHistoryCount(m.history.Count())
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	switch mode {
	case ModeHistory:
		m.statusBar.SetMode(ui.ModeHistory)
	case ModeHelp:
		m.statusBar.SetMode(ui.ModeHelp)
	case ModeInput:
		m.statusBar.SetMode(ui.ModeInput)
	case ModeTheme:
		m.statusBar.SetMode(ui.ModeTheme)
	default:
		m.statusBar.SetMode(ui.ModeCalc)
	}
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHistory:
		return m.handleHistoryMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeTheme:
		return m.handleThemeMode(msg)
	default:
		return m.handleCalcMode(msg)
	}
}

// handleCalcMode processes keys while entering calculations.
func (m Model) handleCalcMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpView.Refresh()
		m.setMode(ModeHelp)
		return m, nil

	case key.Matches(msg, m.keys.HistoryToggle):
		m.historyPanel.Show()
		m.setMode(ModeHistory)
		m.syncHistory()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.ThemeToggle):
		name := theme.Toggle()
		m.helpView.Refresh()
		m.statusBar.SetMessage("Theme: " + name)
		m.saveTheme(name)
		return m, nil

	case key.Matches(msg, m.keys.ThemePicker):
		m.themePicker.Show()
		m.setMode(ModeTheme)
		return m, nil

	case key.Matches(msg, m.keys.ExprInput):
		m.setMode(ModeInput)
		cmd := m.exprBar.Open()
		m.layout()
		return m, cmd
	}

	ev, ok := EventForKey(m.keys, msg)
	if !ok {
		return m, nil
	}
	return m.apply(ev)
}

// apply runs one input event against the engine and highlights its button.
func (m Model) apply(ev Event) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage("")
	outcome := Apply(m.engine, ev)

	if ev.Action == ActionEvaluate {
		m.observe(outcome)
	}

	label := ev.Label()
	m.keypad.Press(label)
	return m, tea.Tick(keyReleaseDelay, func(time.Time) tea.Msg {
		return keyReleaseMsg{label: label}
	})
}

// observe reports an evaluation outcome to metrics and the status bar.
func (m *Model) observe(outcome calc.Outcome) {
	m.metrics.ObserveEvaluation(outcome.String())
	m.logger.Debug("Evaluated", logfields.Outcome(outcome.String()))
	switch outcome {
	case calc.OutcomeError:
		m.statusBar.SetError("Cannot divide by zero")
	case calc.OutcomeSuccess:
		m.syncHistory()
	}
}

// saveTheme writes the theme choice back to the config file, if there is one.
func (m Model) saveTheme(name string) {
	if m.config == nil {
		return
	}
	m.config.Theme = name
	if err := m.config.Save(); err != nil {
		m.logger.Warn("Failed to save theme", logfields.Path(m.config.Path()), logfields.Error(err))
	}
}

// handleHistoryMode processes keys when the history panel is active.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.historyPanel.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.historyPanel.CursorUp()
		return m, nil

	case msg.String() == "g":
		m.historyPanel.HandleGKey()
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.historyPanel.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.historyPanel.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.historyPanel.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.historyPanel.ResetGKey()
		if m.history.Remove(m.historyPanel.SelectedIndex()) {
			m.statusBar.SetMessage("Entry deleted")
		}
		m.syncHistory()
		return m, nil

	case key.Matches(msg, m.keys.DeleteAll):
		m.historyPanel.ResetGKey()
		m.history.Clear()
		m.syncHistory()
		m.statusBar.SetMessage("History cleared")
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.historyPanel.ResetGKey()
		entry := m.historyPanel.SelectedEntry()
		if entry == nil {
			return m, nil
		}
		m.engine.Restore(entry.Equation, entry.Result)
		m.closeHistory()
		m.statusBar.SetMessage("Restored " + entry.Equation)
		return m, nil

	case key.Matches(msg, m.keys.Close):
		m.closeHistory()
		return m, nil

	case msg.String() == "q":
		return m, tea.Quit
	}

	// Reset g key on any other key press.
	m.historyPanel.ResetGKey()
	return m, nil
}

func (m *Model) closeHistory() {
	m.historyPanel.Hide()
	m.setMode(ModeCalc)
	m.layout()
}

// handleInputMode edits the expression bar and runs it on enter.
func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := m.exprBar.Submit()
		m.setMode(ModeCalc)
		m.layout()
		if input == "" {
			return m, nil
		}
		events, err := ParseKeys(m.keys, input)
		if err != nil {
			m.statusBar.SetError(err.Error())
			return m, nil
		}
		m.statusBar.SetMessage("")
		m.observe(Run(m.engine, events))
		return m, nil

	case tea.KeyEsc:
		m.exprBar.Close()
		m.setMode(ModeCalc)
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	_, cmd = m.exprBar.Update(msg)
	return m, cmd
}

// handleThemeMode picks a theme by number from the picker.
func (m Model) handleThemeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.themePicker.Hide()
	m.setMode(ModeCalc)

	name, ok := m.themePicker.Choose(msg.String())
	if !ok {
		return m, nil
	}
	theme.Set(name)
	m.helpView.Refresh()
	m.statusBar.SetMessage("Theme: " + name)
	m.saveTheme(name)
	return m, nil
}

// handleHelpMode scrolls the keybinding reference.
func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc", key.Matches(msg, m.keys.Help):
		m.setMode(ModeCalc)
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.helpView.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.helpView.LineUp(1)
		return m, nil
	}
	var cmd tea.Cmd
	_, cmd = m.helpView.Update(msg)
	return m, cmd
}

// Engine returns the calculator engine.
func (m Model) Engine() *calc.Engine {
	return m.engine
}

// helpMarkdown builds the keybinding reference from the key map.
func helpMarkdown(keys KeyMap) string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Entry", []key.Binding{keys.Digit, keys.Decimal, keys.Add, keys.Subtract, keys.Multiply, keys.Divide}},
		{"Editing", []key.Binding{keys.Evaluate, keys.Backspace, keys.Clear, keys.Percent, keys.ToggleSign}},
		{"History", []key.Binding{keys.HistoryToggle, keys.Up, keys.Down, keys.HalfPageDown, keys.HalfPageUp, keys.GotoBottom, keys.Select, keys.Delete, keys.DeleteAll, keys.Close}},
		{"General", []key.Binding{keys.ExprInput, keys.ThemeToggle, keys.ThemePicker, keys.Help, keys.Quit}},
	}

	var sb strings.Builder
	sb.WriteString("# tcalc\n\n")
	sb.WriteString("Multiplication and division are applied before addition and subtraction. ")
	sb.WriteString("The last 20 results are kept in history.\n\n")
	for _, s := range sections {
		sb.WriteString("## " + s.title + "\n\n")
		rows := make([][2]string, 0, len(s.bindings))
		for _, b := range s.bindings {
			h := b.Help()
			rows = append(rows, [2]string{h.Key, h.Desc})
		}
		sb.WriteString(ui.PlainKeyTable(rows))
		sb.WriteString("\n")
	}
	return sb.String()
}
