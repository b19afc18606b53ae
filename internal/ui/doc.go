// Package ui holds the color themes shared by the CLI, the REPL and the
// terminal calculator: ANSI escape codes for line-oriented output and a
// lipgloss palette for the TUI.
package ui
