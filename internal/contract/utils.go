package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/gensight/gensight/schema"
)

// Color variables for console output.
var (
	okColor       = color.New(color.FgGreen, color.Bold)
	degradedColor = color.New(color.FgYellow, color.Bold)
	failedColor   = color.New(color.FgRed, color.Bold)
	skippedColor  = color.New(color.FgCyan)
)

// GetColorStatus returns a colored status label for table output.
func GetColorStatus(status schema.MonthStatus) string {
	switch status {
	case schema.StatusOK:
		return okColor.Sprint(string(status))
	case schema.StatusDegraded:
		return degradedColor.Sprint(string(status))
	case schema.StatusFailed:
		return failedColor.Sprint(string(status))
	default:
		return skippedColor.Sprint(string(status))
	}
}

// TerminalWidth returns the current terminal width, or fallback when
// stdout is not a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// TruncateText shortens s to at most limit runes, marking the cut with
// an ellipsis. Used to keep free-text columns inside table bounds.
func TruncateText(s string, limit int) string {
	if limit <= 3 || len([]rune(s)) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}
