package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/gitctx"
)

const (
	hookMarkerStart = "# >>> codereport pre-commit hook >>>"
	hookMarkerEnd   = "# <<< codereport pre-commit hook <<<"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook that runs codereport check",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install codereport check as a git pre-commit hook",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runHookInstall(root, os.Stdout)
	}),
}

func runHookInstall(root string, out io.Writer) error {
	hookPath, err := getHookPath(root)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(hookPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "reading hook file")
	}

	section := generateHookScript()
	var content string
	if len(existing) == 0 {
		content = "#!/bin/sh\n" + section
	} else {
		content = replaceHookSection(string(existing), section)
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return errors.Wrap(err, "creating hooks directory")
	}
	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return errors.Wrap(err, "writing hook file")
	}

	fmt.Fprintf(out, "Installed codereport pre-commit hook at %s\n", hookPath)
	return nil
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the codereport pre-commit hook",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runHookUninstall(root, os.Stdout)
	}),
}

func runHookUninstall(root string, out io.Writer) error {
	hookPath, err := getHookPath(root)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No pre-commit hook found.")
			return nil
		}
		return errors.Wrap(err, "reading hook file")
	}

	content := removeHookSection(string(existing))

	// Only a shebang left: remove the file.
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
		if err := os.Remove(hookPath); err != nil {
			return errors.Wrap(err, "removing hook file")
		}
		fmt.Fprintf(out, "Removed codereport pre-commit hook at %s\n", hookPath)
		return nil
	}

	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return errors.Wrap(err, "writing hook file")
	}
	fmt.Fprintf(out, "Removed codereport section from %s\n", hookPath)
	return nil
}

func getHookPath(root string) (string, error) {
	repo, err := gitctx.Open(root)
	if err != nil {
		return "", err
	}
	dir, err := repo.HooksDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pre-commit"), nil
}

func generateHookScript() string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString("codereport check\n")
	b.WriteString("CODEREPORT_EXIT=$?\n")
	b.WriteString("if [ $CODEREPORT_EXIT -eq 1 ]; then\n")
	b.WriteString("  echo \"codereport: blocking or expired reports, commit blocked\"\n")
	b.WriteString("  exit 1\n")
	b.WriteString("elif [ $CODEREPORT_EXIT -ge 2 ]; then\n")
	b.WriteString("  echo \"codereport: check failed to run (exit $CODEREPORT_EXIT), allowing commit\"\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
}
