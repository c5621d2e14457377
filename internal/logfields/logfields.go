package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyError   = "error"
	KeyPath    = "path"
	KeyKey     = "key"
	KeyCount   = "count"
	KeyOutcome = "outcome"
	KeyTheme   = "theme"
	KeyAddr    = "addr"
	KeyCommand = "command"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Key(k string) slog.Attr        { return slog.String(KeyKey, k) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Outcome(o string) slog.Attr    { return slog.String(KeyOutcome, o) }
func Theme(name string) slog.Attr   { return slog.String(KeyTheme, name) }
func Addr(a string) slog.Attr       { return slog.String(KeyAddr, a) }
func Command(name string) slog.Attr { return slog.String(KeyCommand, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
