package output

import (
	"os"

	"golang.org/x/term"

	"github.com/dshills/codereport/internal/config"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiPurple = "\033[35m"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func severityColor(s config.Severity) string {
	switch s {
	case config.SeverityBlocking:
		return ansiBold + ansiRed
	case config.SeverityHigh:
		return ansiYellow
	case config.SeverityMedium:
		return ansiPurple
	default:
		return ansiDim
	}
}

func paint(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + ansiReset
}
