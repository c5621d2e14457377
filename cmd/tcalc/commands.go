package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/vidyasagar/tcalc/internal/app"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/logfields"
	"github.com/vidyasagar/tcalc/internal/metrics"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Global is passed to every command's Run method.
type Global struct {
	Out io.Writer
	Err io.Writer
}

// CLI definition & global flags. Flags override environment variables,
// which override the config file.
type CLI struct {
	Config      string `short:"c" help:"Configuration file path (default: user config dir)" env:"TCALC_CONFIG" type:"path"`
	DataDir     string `help:"Directory holding the history database and log" env:"TCALC_DATA_DIR" type:"path"`
	Theme       string `help:"Color theme (${themes})" env:"TCALC_THEME"`
	LogLevel    string `help:"Log level (debug, info, warn, error)" env:"TCALC_LOG_LEVEL"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address, e.g. :9090" env:"TCALC_METRICS_ADDR"`

	Tui     TuiCmd     `cmd:"" default:"1" help:"Start the interactive calculator"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate a key sequence such as 2+3*4="`
	History HistoryCmd `cmd:"" help:"Inspect or clear saved calculations"`
	Version VersionCmd `cmd:"" help:"Show version and exit"`
}

// session is the state shared by commands that touch history.
type session struct {
	cfg       *storage.Config
	fileTheme string // theme as written in the config file, before overrides
	dataDir   string
	logger    *slog.Logger
	db        *storage.DB
	history   *storage.HistoryLog
	logFile   *os.File
}

// open loads configuration, sets up logging and opens the history store.
// The TUI owns the terminal, so it logs to a file in the data directory.
func (c *CLI) open(g *Global, logToFile bool) (*session, error) {
	cfg, err := storage.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	fileTheme := cfg.Theme
	if c.Theme != "" {
		cfg.Theme = c.Theme
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.MetricsAddr != "" {
		cfg.MetricsAddr = c.MetricsAddr
	}

	if !theme.Set(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(theme.List(), ", "))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	dataDir := c.DataDir
	if dataDir == "" {
		if dataDir, err = storage.DataDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &session{cfg: cfg, fileTheme: fileTheme, dataDir: dataDir}

	var out io.Writer = g.Err
	if logToFile {
		f, err := os.OpenFile(filepath.Join(dataDir, "tcalc.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		s.logFile = f
		out = f
	}
	s.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(s.logger)

	db, err := storage.OpenDB(dataDir)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.db = db
	s.logger.Debug("Opened history database", logfields.Path(db.Path()))
	s.history = storage.NewHistoryLog(storage.NewKVStore(db), cfg.HistoryKey, s.logger)
	return s, nil
}

// Close releases the database and log file.
func (s *session) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("Failed to close database", logfields.Error(err))
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// TuiCmd implements the 'tui' command.
type TuiCmd struct{}

func (t *TuiCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g, true)
	if err != nil {
		return err
	}
	defer s.Close()
	s.logger.Info("Starting tcalc", logfields.Command("tui"), logfields.Theme(theme.Current.Name))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if s.cfg.MetricsAddr != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		metrics.Serve(ctx, s.cfg.MetricsAddr, reg, s.logger)
	}

	m := app.New(app.Options{
		History: s.history,
		Metrics: rec,
		Logger:  s.logger,
		Config:  s.cfg,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	onReload := themeEdits(s.fileTheme, func(name string) {
		p.Send(app.ThemeChangedMsg{Name: name})
	})
	if err := storage.WatchConfig(ctx, s.cfg.Path(), s.logger, onReload); err != nil {
		s.logger.Warn("Config changes will not apply live", logfields.Error(err))
	}

	_, err = p.Run()
	return err
}

// themeEdits returns a config reload callback that calls send only when the
// theme written in the file differs from the last one seen. Edits to other
// fields leave a --theme or TCALC_THEME override in place.
func themeEdits(initial string, send func(name string)) func(*storage.Config) {
	last := initial
	return func(c *storage.Config) {
		if c.Theme == last {
			return
		}
		last = c.Theme
		send(c.Theme)
	}
}

// EvalCmd implements the 'eval' command.
type EvalCmd struct {
	Keys      []string `arg:"" help:"Keys to press, e.g. 12+3*4= (x or * multiplies, n toggles sign)"`
	NoHistory bool     `help:"Do not record the result in history"`
}

func (e *EvalCmd) Run(g *Global, root *CLI) error {
	input := strings.Join(e.Keys, " ")
	events, err := app.ParseKeys(app.DefaultKeyMap(), input)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", input, err)
	}

	s, err := root.open(g, false)
	if err != nil {
		return err
	}
	defer s.Close()

	engine := calc.NewEngine(s.history)
	if e.NoHistory {
		engine.SetRecorder(nil)
	}
	outcome := app.Run(engine, events)
	s.logger.Debug("Evaluated", logfields.Command("eval"), logfields.Outcome(outcome.String()))

	fmt.Fprintln(g.Out, engine.Display())
	if outcome == calc.OutcomeError {
		return fmt.Errorf("evaluating %q: %w", input, calc.ErrDivideByZero)
	}
	return nil
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" default:"1" help:"Print saved calculations, newest first"`
	Clear HistoryClearCmd `cmd:"" help:"Delete all saved calculations"`
}

// HistoryListCmd implements 'history list'.
type HistoryListCmd struct {
	JSON bool `help:"Print records as JSON"`
}

func (h *HistoryListCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g, false)
	if err != nil {
		return err
	}
	defer s.Close()

	records := s.history.List()
	if h.JSON {
		if records == nil {
			records = []storage.HistoryRecord{}
		}
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Fprint(g.Out, storage.RenderHistory(records))
	return nil
}

// HistoryClearCmd implements 'history clear'.
type HistoryClearCmd struct{}

func (h *HistoryClearCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g, false)
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.history.Count()
	s.history.Clear()
	if err := s.history.Persist(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	s.logger.Info("History cleared", logfields.Count(n))
	fmt.Fprintf(g.Out, "Cleared %d calculations\n", n)
	return nil
}

// VersionCmd implements 'version'.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global) error {
	fmt.Fprintf(g.Out, "tcalc %s\n", version)
	return nil
}
