package calc

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Grouping always uses English separators so StripGrouping can undo it.
var groupPrinter = message.NewPrinter(language.English)

// FormatNumber converts f to the shortest string that round-trips, using plain
// digits for 1e-6 <= |f| < 1e21 and exponent notation outside that range.
// Negative zero prints as "0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		// strconv pads the exponent to two digits ("1e-07"); drop the padding.
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatEntry converts f to plain decimal digits with no exponent, the form
// an entry buffer must keep so further digits and a decimal point can be
// appended to it. Negative zero prints as "0".
func FormatEntry(f float64) string {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return ZeroBuffer
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber reads a buffer or result string. Anything unparseable
// (including the Error sentinel) reads as zero.
func ParseNumber(s string) float64 {
	s = StripGrouping(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatDisplay adds thousands separators to the integer part of a numeric
// string. Sentinels such as "Error" and "Infinity" pass through unchanged.
func FormatDisplay(s string) string {
	switch s {
	case "", ErrorText, "Infinity", "-Infinity", "NaN":
		return s
	}

	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	intPart, frac, hasDot := strings.Cut(body, ".")

	intPart = groupDigits(intPart)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart)
	if hasDot {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

// StripGrouping removes the separators FormatDisplay inserts.
func StripGrouping(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func groupDigits(digits string) string {
	if len(digits) <= 3 || strings.IndexFunc(digits, notDigit) >= 0 {
		return digits
	}
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return groupPrinter.Sprintf("%d", n)
	}

	// Wider than int64 (up to 21 digits before exponent form kicks in).
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
