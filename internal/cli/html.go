package cli

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/output"
	"github.com/dshills/codereport/internal/report"
)

var flagNoOpen bool

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate the HTML dashboard",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		path, err := runHTML(root, today())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Generated %s\n", path)
		if flagNoOpen {
			return nil
		}
		browser.Stdout = os.Stderr
		if err := browser.OpenFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open browser: %v\n", err)
		}
		return nil
	}),
}

func runHTML(root, today string) (string, error) {
	reports, err := report.Load(root)
	if err != nil {
		return "", err
	}
	return output.WriteDashboardFile(root, output.BuildDashboard(reports.Entries, today))
}

func init() {
	htmlCmd.Flags().BoolVar(&flagNoOpen, "no-open", false, "Do not open the dashboard in a browser")
}
