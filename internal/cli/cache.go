package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/workcell/pkg/cache"
)

// cacheCommand groups the subcommands that manage the CLI's layout cache
// (see cacheDir). The server's memory and Redis caches are not touched.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
		Long: `Solved layouts are cached on disk, keyed by the content hash of the
requirement record and the solver config. Use --refresh on solve to bypass
a single entry, or clear the whole cache here.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layouts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, ok, err := openFileCache()
				if err != nil || !ok {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached layouts", n)
				printDetail("Directory: %s", fc.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the number and size of cached layouts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, ok, err := openFileCache()
				if err != nil || !ok {
					return err
				}
				n, size, err := fc.Stats()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "directory  %s\n", fc.Dir())
				fmt.Fprintf(out, "layouts    %d\n", n)
				fmt.Fprintf(out, "size       %.1f KiB\n", float64(size)/1024)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// openFileCache opens the CLI cache without creating it. ok is false, after
// telling the user, when nothing has been cached yet.
func openFileCache() (fc *cache.FileCache, ok bool, err error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	if err != nil {
		return nil, false, err
	}
	return fc, true, nil
}
