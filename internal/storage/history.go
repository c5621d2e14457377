package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/logfields"
)

const (
	// DefaultHistoryKey is the store key history is saved under.
	DefaultHistoryKey = "calculatorHistory"
	// MaxHistory is the number of records kept; older ones are evicted.
	MaxHistory = 20
)

// HistoryRecord is one completed calculation.
type HistoryRecord struct {
	ID        string `json:"id,omitempty"`
	Equation  string `json:"equation"`
	Result    string `json:"result"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// CreatedAt returns the record time.
func (r HistoryRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// HistoryLog is the bounded, newest-first list of calculations. It is
// loaded once on creation and rewritten to the store after every change.
// Store failures are logged and never returned to callers.
type HistoryLog struct {
	entries  []HistoryRecord
	kv       KV
	key      string
	maxSize  int
	logger   *slog.Logger
	now      func() time.Time
	onChange func(count int)
}

// NewHistoryLog creates a history log backed by kv and loads any saved records.
func NewHistoryLog(kv KV, key string, logger *slog.Logger) *HistoryLog {
	if key == "" {
		key = DefaultHistoryKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &HistoryLog{
		kv:      kv,
		key:     key,
		maxSize: MaxHistory,
		logger:  logger,
		now:     time.Now,
	}
	h.Load()
	return h
}

// OnChange registers fn to be called with the record count after each change.
func (h *HistoryLog) OnChange(fn func(count int)) {
	h.onChange = fn
	h.notify()
}

// Record implements calc.Recorder: it formats result for display and
// prepends a new record.
func (h *HistoryLog) Record(equation string, result float64) {
	rec := HistoryRecord{
		ID:        uuid.NewString(),
		Equation:  equation,
		Result:    calc.FormatDisplay(calc.FormatNumber(result)),
		Timestamp: h.now().UnixMilli(),
	}

	// Prepend (newest first).
	h.entries = append([]HistoryRecord{rec}, h.entries...)

	// Trim if over max.
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}

	h.save()
}

// List returns all records, newest first.
func (h *HistoryLog) List() []HistoryRecord {
	result := make([]HistoryRecord, len(h.entries))
	copy(result, h.entries)
	return result
}

// Get returns the record at idx.
func (h *HistoryLog) Get(idx int) (HistoryRecord, bool) {
	if idx < 0 || idx >= len(h.entries) {
		return HistoryRecord{}, false
	}
	return h.entries[idx], true
}

// Remove deletes a record by index (0-based). Out of range is a no-op.
func (h *HistoryLog) Remove(idx int) bool {
	if idx < 0 || idx >= len(h.entries) {
		return false
	}
	h.entries = append(h.entries[:idx], h.entries[idx+1:]...)
	h.save()
	return true
}

// Clear removes all records.
func (h *HistoryLog) Clear() {
	h.entries = nil
	h.save()
}

// Count returns the number of records.
func (h *HistoryLog) Count() int {
	return len(h.entries)
}

// Load replaces the in-memory records with the stored ones. Missing or
// corrupt data leaves the log empty.
func (h *HistoryLog) Load() {
	h.entries = nil
	defer h.notify()

	if h.kv == nil {
		return
	}
	data, ok, err := h.kv.Get(h.key)
	if err != nil {
		h.logger.Warn("Could not load history", logfields.Key(h.key), logfields.Error(err))
		return
	}
	if !ok || data == "" {
		return
	}

	var entries []HistoryRecord
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		h.logger.Warn("Discarding corrupt history", logfields.Key(h.key), logfields.Error(err))
		return
	}
	if len(entries) > h.maxSize {
		entries = entries[:h.maxSize]
	}
	h.entries = entries
	h.logger.Debug("History loaded", logfields.Key(h.key), logfields.Count(len(entries)))
}

// Persist writes the current records to the store.
func (h *HistoryLog) Persist() error {
	if h.kv == nil {
		return nil
	}
	entries := h.entries
	if entries == nil {
		entries = []HistoryRecord{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := h.kv.Set(h.key, string(data)); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func (h *HistoryLog) save() {
	if err := h.Persist(); err != nil {
		h.logger.Warn("Could not save history", logfields.Key(h.key), logfields.Error(err))
	}
	h.notify()
}

func (h *HistoryLog) notify() {
	if h.onChange != nil {
		h.onChange(len(h.entries))
	}
}

// RenderHistory formats records as plain text for the terminal.
func RenderHistory(records []HistoryRecord) string {
	var result string

	result += "  History\n"
	result += "  ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n"

	if len(records) == 0 {
		result += "  No calculations yet.\n"
		return result
	}

	for i, r := range records {
		result += fmt.Sprintf("  [%d] %s %s\n", i+1, r.Equation, r.Result)
		result += fmt.Sprintf("       %s\n\n", TimeAgo(r.CreatedAt()))
	}

	return result
}

// TimeAgo describes how long ago t was, in minutes, hours or days.
func TimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
