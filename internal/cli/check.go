package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/output"
	"github.com/dshills/codereport/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail if any open report is blocking or expired",
	Long: "Check exits 1 and lists every open report whose tag severity is blocking " +
		"or whose expiry date has passed. Intended for CI.",
	Args: cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		n, err := runCheck(root, today(), os.Stderr, output.IsTerminal(os.Stderr))
		if err != nil {
			return err
		}
		if n > 0 {
			exitCode = ExitFailure
		}
		return nil
	}),
}

// runCheck prints violations to w and returns how many there were.
func runCheck(root, today string, w io.Writer, color bool) (int, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return 0, err
	}
	reports, err := report.Load(root)
	if err != nil {
		return 0, err
	}

	violations := reports.Violations(cfg, today)
	if len(violations) == 0 {
		return 0, nil
	}
	l := &output.Listing{Today: today, Config: cfg, Entries: violations}
	tw := &output.TextWriter{Color: color}
	if err := tw.WriteViolations(w, l); err != nil {
		return len(violations), err
	}
	fmt.Fprintf(w, "%d blocking or expired report(s)\n", len(violations))
	return len(violations), nil
}
