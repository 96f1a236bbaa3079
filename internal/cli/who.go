package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/report"
)

var flagWhoJSON bool

var whoCmd = &cobra.Command{
	Use:   "who <path:start-end>",
	Short: "Show the author that would be recorded for a line range",
	Args:  cobra.ExactArgs(1),
	RunE: withRoot(func(root string, args []string) error {
		return runWho(root, newResolver(), args[0], flagWhoJSON, os.Stdout)
	}),
}

func runWho(root string, resolver *author.Resolver, location string, asJSON bool, out io.Writer) error {
	path, lines, err := report.ParseLocation(location)
	if err != nil {
		return err
	}
	resolved := resolver.Resolve(root, path, lines.Start, lines.End)

	if asJSON {
		data, err := json.MarshalIndent(report.AuthorFromResolved(resolved), "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshaling JSON")
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintf(out, "git:       %s\n", orUnknown(resolved.Git))
	fmt.Fprintf(out, "codeowner: %s\n", orUnknown(resolved.Codeowner))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func init() {
	whoCmd.Flags().BoolVar(&flagWhoJSON, "json", false, "Print the result as JSON")
}
