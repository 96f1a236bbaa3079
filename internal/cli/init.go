package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/config"
)

const (
	gitignoreMarker = "# codereport"
	gitignoreBlock  = gitignoreMarker + " (generated dashboard and local blame cache)\n" +
		".codereports/html/\n" +
		".codereports/.blame-cache\n"
	schemaFile = "schema.json"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .codereports/ with config and schema",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runInit(root, os.Stdout)
	}),
}

func runInit(root string, out io.Writer) error {
	dir := config.Dir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", config.DirName)
	}
	if err := ensureGitignore(root); err != nil {
		return errors.Wrap(err, "updating repository .gitignore")
	}

	if _, err := os.Stat(config.Path(root)); os.IsNotExist(err) {
		if err := config.Save(root, config.Default()); err != nil {
			return err
		}
	}

	schemaPath := filepath.Join(dir, schemaFile)
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		if err := os.WriteFile(schemaPath, []byte(config.SchemaJSON), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", schemaFile)
		}
	}

	fmt.Fprintf(out, "Initialized %s/ in %s\n", config.DirName, root)
	return nil
}

// ensureGitignore appends the codereport block to the root .gitignore once.
func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	content := string(existing)
	if strings.Contains(content, ".codereports/html/") || strings.Contains(content, gitignoreMarker) {
		return nil
	}
	return os.WriteFile(path, []byte(appendGitignoreBlock(content)), 0o644)
}

func appendGitignoreBlock(content string) string {
	if strings.TrimSpace(content) == "" {
		return gitignoreBlock
	}
	return strings.TrimRight(content, "\n") + "\n" + gitignoreBlock
}
