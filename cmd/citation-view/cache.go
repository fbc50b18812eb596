// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-view/internal/source"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached result sets (import, list, drop)",
	Long: `Cache keeps result sets in a local SQLite database (cache.path) so they can
be viewed, listed or exported again with --cache <key>.`,
}

// --- import subcommand ---

var cacheImportCmd = &cobra.Command{
	Use:   "import <key> <file>",
	Short: "Store a JSON or YAML result set under key",
	Args:  cobra.ExactArgs(2),
	RunE:  runCacheImport,
}

func runCacheImport(cmd *cobra.Command, args []string) error {
	key, path := args[0], args[1]
	recs, err := source.LoadFile(path)
	if err != nil {
		return err
	}

	c, err := source.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Put(cmd.Context(), key, recs); err != nil {
		return err
	}
	logger.Info().Str("key", key).Int("records", len(recs)).Msg("result set cached")
	fmt.Printf("Stored %d record(s) under %q\n", len(recs), key)
	return nil
}

// --- list subcommand ---

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached result sets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := source.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer c.Close()

		entries, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No cached result sets.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-8s  %s\n", "Key", "Records", "Created")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 62))
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%-30s  %-8d  %s\n", e.Key, e.Count, e.CreatedAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

// --- drop subcommand ---

var cacheDropCmd = &cobra.Command{
	Use:   "drop <key>",
	Short: "Remove a cached result set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := source.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Drop(cmd.Context(), args[0]); err != nil {
			return err
		}
		logger.Info().Str("key", args[0]).Msg("result set dropped")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheImportCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheDropCmd)

	rootCmd.AddCommand(cacheCmd)
}
