package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/codereport/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the blame cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the blame cache",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		if err := cache.Clear(cache.Path(root)); err != nil {
			return errors.Wrap(err, "clearing cache")
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
		return nil
	}),
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show blame cache statistics",
	Args:  cobra.NoArgs,
	RunE: withRoot(func(root string, args []string) error {
		return runCacheShow(root, os.Stdout)
	}),
}

func runCacheShow(root string, out io.Writer) error {
	stats, err := cache.GetStats(cache.Path(root))
	if err != nil {
		return errors.Wrap(err, "reading cache stats")
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheShowCmd)
}
