package ui

import (
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes of one color scheme.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

func ansi256(n string) string { return "\033[38;5;" + n + "m" }

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("39"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("220"),
		Error:     ansi256("196"),
		Info:      ansi256("141"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("27"),
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("54"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme renders plain text. It is selected by -no-color or by
	// the NO_COLOR environment variable.
	NoColorTheme = Theme{Name: "none"}

	themes = []Theme{DarkTheme, LightTheme, NoColorTheme}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the names accepted by SetTheme.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name and reports whether the
// name was known. Unknown names select DarkTheme.
func SetTheme(name string) bool {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		currentTheme = DarkTheme
		return false
	}
	currentTheme = themes[i]
	return true
}

// InitTheme selects NoColorTheme when noColor is set or NO_COLOR is present
// in the environment (https://no-color.org/), DarkTheme otherwise.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// ─────────────────────────────────────────────────────────────────────────────
// TUI Palette
// ─────────────────────────────────────────────────────────────────────────────

// Palette holds the lipgloss colors of the terminal calculator.
type Palette struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	darkPalette = Palette{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3A7BD5"),
		Accent:  lipgloss.Color("#00B4FF"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}
	lightPalette = Palette{
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#1F4E9C"),
		Accent:  lipgloss.Color("#005FAF"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#AF5F00"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#8A8A8A"),
	}
	plainPalette = Palette{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// CurrentPalette returns the TUI palette matching the active theme.
func CurrentPalette() Palette {
	switch GetCurrentTheme().Name {
	case NoColorTheme.Name:
		return plainPalette
	case LightTheme.Name:
		return lightPalette
	default:
		return darkPalette
	}
}
