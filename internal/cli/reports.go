package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/gitctx"
	"github.com/dshills/codereport/internal/logging"
	"github.com/dshills/codereport/internal/output"
	"github.com/dshills/codereport/internal/report"
)

var (
	flagTag     string
	flagMessage string
	flagStatus  string
	flagFormat  string
	flagOut     string
)

var addCmd = &cobra.Command{
	Use:     "add <path:start-end>",
	Short:   "Add a report for a line range",
	Example: "  codereport add src/db.go:42-88 --tag buggy --message \"connection leak on error path\"",
	Args:    cobra.ExactArgs(1),
	RunE: withRoot(func(root string, args []string) error {
		return runAdd(root, newResolver(), args[0], flagTag, flagMessage, time.Now(), os.Stdout)
	}),
}

func runAdd(root string, resolver *author.Resolver, location, tagName, message string, now time.Time, out io.Writer) error {
	path, lines, err := report.ParseLocation(location)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	tag, err := cfg.ValidateTagForAdd(tagName)
	if err != nil {
		return errors.WithHintf(err, "configured tags: %v", cfg.TagNames())
	}
	reports, err := report.Load(root)
	if err != nil {
		return err
	}

	resolved := resolver.Resolve(root, path, lines.Start, lines.End)
	logging.Logger.Debugw("resolved author",
		"path", path, "range", lines.String(), "git", resolved.Git, "codeowner", resolved.Codeowner)

	var expires *int
	if days, ok := cfg.ExpiresDays(tag); ok {
		expires = &days
	}
	id := reports.NextID()
	reports.Add(report.NewEntry(id, path, lines, tag, message, report.AuthorFromResolved(resolved), now, expires))
	if err := report.Save(root, reports); err != nil {
		return err
	}

	fmt.Fprintf(out, "Added %s %s\n", id, path)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports with optional filters",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runList(root, flagTag, flagStatus, flagFormat, flagOut)
	}),
}

func runList(root, tag, status, format, outPath string) error {
	reports, err := report.Load(root)
	if err != nil {
		return err
	}
	l := newListing(root, reports.Filter(tag, status))
	return output.WriteListing(l, format, outPath)
}

// newListing prepares entries for rendering. Config and repository metadata
// only decorate the output, so their absence is not an error.
func newListing(root string, entries []report.Entry) *output.Listing {
	l := &output.Listing{
		Version: version,
		Root:    root,
		Today:   today(),
		Entries: entries,
	}
	cfg, err := config.Load(root)
	if err != nil {
		logging.Logger.Debugw("using default config for display", "error", err)
		cfg = config.Default()
	}
	l.Config = cfg
	if repo, err := gitctx.Open(root); err == nil {
		l.Branch = repo.Meta().Branch
	}
	return l
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a report by ID",
	Args:  cobra.ExactArgs(1),
	RunE: withRoot(func(root string, args []string) error {
		return runDelete(root, args[0], os.Stdout)
	}),
}

func runDelete(root, id string, out io.Writer) error {
	reports, err := report.Load(root)
	if err != nil {
		return err
	}
	if err := reports.Delete(id); err != nil {
		return err
	}
	if err := report.Save(root, reports); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Mark a report as resolved",
	Args:  cobra.ExactArgs(1),
	RunE: withRoot(func(root string, args []string) error {
		return runResolve(root, args[0], os.Stdout)
	}),
}

func runResolve(root, id string, out io.Writer) error {
	reports, err := report.Load(root)
	if err != nil {
		return err
	}
	if err := reports.Resolve(id); err != nil {
		return err
	}
	if err := report.Save(root, reports); err != nil {
		return err
	}
	fmt.Fprintf(out, "Resolved %s\n", id)
	return nil
}

func init() {
	addCmd.Flags().StringVar(&flagTag, "tag", "", "Report tag (todo, refactor, buggy, critical)")
	addCmd.Flags().StringVar(&flagMessage, "message", "", "Report message")
	_ = addCmd.MarkFlagRequired("tag")
	_ = addCmd.MarkFlagRequired("message")

	listCmd.Flags().StringVar(&flagTag, "tag", "", "Only list reports with this tag")
	listCmd.Flags().StringVar(&flagStatus, "status", "", "Only list reports with this status (open, resolved)")
	listCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown, sarif)")
	listCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}
