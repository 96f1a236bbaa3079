package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tag configuration",
}

var configSetCmd = &cobra.Command{
	Use:     "set <tag.field> <value>",
	Short:   "Set a tag option (enabled, severity, expires)",
	Example: "  codereport config set buggy.expires 30\n  codereport config set todo.severity medium",
	Args:    cobra.ExactArgs(2),
	RunE: withRoot(func(root string, args []string) error {
		return runConfigSet(root, args[0], args[1], os.Stdout)
	}),
}

func runConfigSet(root, key, value string, out io.Writer) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if err := config.SetField(&cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(root, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runConfigShow(root, os.Stdout)
	}),
}

func runConfigShow(root string, out io.Writer) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s\n%s", config.Path(root), data)
	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
