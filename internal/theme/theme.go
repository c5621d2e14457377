package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name string
	Dark bool

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// UI element colors
	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Keypad
	KeyDigit    lipgloss.Color
	KeyFunction lipgloss.Color
	KeyOperator lipgloss.Color
	KeyEquals   lipgloss.Color
	KeyPressed  lipgloss.Color

	// Semantic colors
	Operator lipgloss.Color
	Result   lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Info     lipgloss.Color
}

var themes = map[string]Theme{
	"dark":      Dark,
	"light":     Light,
	"gruvbox":   Gruvbox,
	"solarized": Solarized,
}

var Dark = Theme{
	Name:        "dark",
	Dark:        true,
	Primary:     lipgloss.Color("#7C3AED"),
	Secondary:   lipgloss.Color("#06B6D4"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#E2E8F0"),
	TextDim:     lipgloss.Color("#64748B"),
	TextBright:  lipgloss.Color("#F8FAFC"),
	Background:  lipgloss.Color("#0F172A"),
	Surface:     lipgloss.Color("#1E293B"),
	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#7C3AED"),
	KeyDigit:    lipgloss.Color("#1E293B"),
	KeyFunction: lipgloss.Color("#334155"),
	KeyOperator: lipgloss.Color("#2563EB"),
	KeyEquals:   lipgloss.Color("#7C3AED"),
	KeyPressed:  lipgloss.Color("#F59E0B"),
	Operator:    lipgloss.Color("#38BDF8"),
	Result:      lipgloss.Color("#F8FAFC"),
	Error:       lipgloss.Color("#EF4444"),
	Success:     lipgloss.Color("#22C55E"),
	Warning:     lipgloss.Color("#F59E0B"),
	Info:        lipgloss.Color("#3B82F6"),
}

var Light = Theme{
	Name:        "light",
	Dark:        false,
	Primary:     lipgloss.Color("#6D28D9"),
	Secondary:   lipgloss.Color("#0891B2"),
	Accent:      lipgloss.Color("#D97706"),
	Text:        lipgloss.Color("#1E293B"),
	TextDim:     lipgloss.Color("#64748B"),
	TextBright:  lipgloss.Color("#0F172A"),
	Background:  lipgloss.Color("#F8FAFC"),
	Surface:     lipgloss.Color("#E2E8F0"),
	Border:      lipgloss.Color("#CBD5E1"),
	BorderFocus: lipgloss.Color("#6D28D9"),
	KeyDigit:    lipgloss.Color("#FFFFFF"),
	KeyFunction: lipgloss.Color("#E2E8F0"),
	KeyOperator: lipgloss.Color("#BFDBFE"),
	KeyEquals:   lipgloss.Color("#DDD6FE"),
	KeyPressed:  lipgloss.Color("#FDE68A"),
	Operator:    lipgloss.Color("#2563EB"),
	Result:      lipgloss.Color("#0F172A"),
	Error:       lipgloss.Color("#DC2626"),
	Success:     lipgloss.Color("#16A34A"),
	Warning:     lipgloss.Color("#D97706"),
	Info:        lipgloss.Color("#2563EB"),
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Dark:        true,
	Primary:     lipgloss.Color("#D65D0E"),
	Secondary:   lipgloss.Color("#458588"),
	Accent:      lipgloss.Color("#D79921"),
	Text:        lipgloss.Color("#EBDBB2"),
	TextDim:     lipgloss.Color("#928374"),
	TextBright:  lipgloss.Color("#FBF1C7"),
	Background:  lipgloss.Color("#282828"),
	Surface:     lipgloss.Color("#3C3836"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#D65D0E"),
	KeyDigit:    lipgloss.Color("#3C3836"),
	KeyFunction: lipgloss.Color("#504945"),
	KeyOperator: lipgloss.Color("#458588"),
	KeyEquals:   lipgloss.Color("#D65D0E"),
	KeyPressed:  lipgloss.Color("#FABD2F"),
	Operator:    lipgloss.Color("#83A598"),
	Result:      lipgloss.Color("#FBF1C7"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FABD2F"),
	Info:        lipgloss.Color("#83A598"),
}

var Solarized = Theme{
	Name:        "solarized",
	Dark:        false,
	Primary:     lipgloss.Color("#268BD2"),
	Secondary:   lipgloss.Color("#2AA198"),
	Accent:      lipgloss.Color("#B58900"),
	Text:        lipgloss.Color("#657B83"),
	TextDim:     lipgloss.Color("#93A1A1"),
	TextBright:  lipgloss.Color("#073642"),
	Background:  lipgloss.Color("#FDF6E3"),
	Surface:     lipgloss.Color("#EEE8D5"),
	Border:      lipgloss.Color("#93A1A1"),
	BorderFocus: lipgloss.Color("#268BD2"),
	KeyDigit:    lipgloss.Color("#FDF6E3"),
	KeyFunction: lipgloss.Color("#EEE8D5"),
	KeyOperator: lipgloss.Color("#D6E6F2"),
	KeyEquals:   lipgloss.Color("#268BD2"),
	KeyPressed:  lipgloss.Color("#B58900"),
	Operator:    lipgloss.Color("#268BD2"),
	Result:      lipgloss.Color("#073642"),
	Error:       lipgloss.Color("#DC322F"),
	Success:     lipgloss.Color("#859900"),
	Warning:     lipgloss.Color("#B58900"),
	Info:        lipgloss.Color("#268BD2"),
}

// Current is the active theme.
var Current = Dark

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// Toggle flips between the light and dark palettes and returns the new name.
func Toggle() string {
	if Current.Dark {
		Current = Light
	} else {
		Current = Dark
	}
	return Current.Name
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
