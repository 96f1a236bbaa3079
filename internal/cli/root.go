package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/gitctx"
	"github.com/dshills/codereport/internal/logging"
	"github.com/dshills/codereport/internal/report"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

var (
	flagVerbose bool
	flagLogJSON bool
	flagDir     string
)

var rootCmd = &cobra.Command{
	Use:   "codereport",
	Short: "Track code review notes inside a git repository",
	Long: "codereport records tagged notes against line ranges, stamps each with an author " +
		"resolved from CODEOWNERS and git blame, gates CI on blocking or expired notes, " +
		"and renders an HTML dashboard.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(flagVerbose, flagLogJSON)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(whoCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)
	defer logging.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail reports err with any attached hints and sets a failing exit code.
func fail(err error) {
	printError(os.Stderr, err)
	exitCode = ExitFailure
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// repoRoot finds the repository root from --dir or the working directory.
func repoRoot() (string, error) {
	dir := flagDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "resolving working directory")
		}
		dir = wd
	}
	root, err := gitctx.FindRoot(dir)
	if err != nil {
		return "", errors.WithHint(err, "run codereport inside a git repository or pass --dir")
	}
	return root, nil
}

// withRoot adapts a handler that needs the repository root into a cobra RunE.
// Failures are reported by fail so they map to ExitFailure, not usage errors.
func withRoot(run func(root string, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			fail(err)
			return nil
		}
		if err := run(root, args); err != nil {
			fail(err)
		}
		return nil
	}
}

func newResolver() *author.Resolver {
	return author.New(author.WithLogger(logging.Named("author")))
}

func today() string {
	return time.Now().Format(report.DateLayout)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print codereport version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "codereport version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log best-effort failures (blame, cache) to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", "", "Run as if started in this directory")
}
