// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citation-view CLI: an interactive
// viewer over a result set of scholarly articles, with list, export and
// cache subcommands for scripted use.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-view/internal/observability"
	"github.com/pdiddy/citation-view/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the configuration after file and environment overrides.
	cfg = types.DefaultConfig()

	logger    = zerolog.Nop()
	logCloser io.Closer
)

// rootCmd is the base command for the citation-view CLI.
var rootCmd = &cobra.Command{
	Use:   "citation-view",
	Short: "Browse, filter and export a result set of scholarly articles",
	Long: `citation-view shows a result set of articles (DOI, title, journal, first
author, year, summary, citation count and score) in a paginated table and a
card list. Records can be filtered, sorted and selected, and the selection is
exported as Excel, RIS, BibTeX or CSL-YAML.

Result sets are read from JSON or YAML files, or from the local cache filled
by "cache import".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c := types.DefaultConfig()
		if err := viper.Unmarshal(&c); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		cfg = c

		// The terminal UI owns the screen; only a log file can be written
		// while it runs.
		if cmd == viewCmd && !logsToFile(cfg.Log) {
			return nil
		}
		l, closer, err := observability.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citation-view.yaml or ~/.config/citation-view/citation-view.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citation-view")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citation-view"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())

	viper.SetEnvPrefix("CITATION_VIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment variables such as
// CITATION_VIEW_EXPORT_DIR reach Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("view.page_sizes", d.View.PageSizes)
	v.SetDefault("view.page_size", d.View.PageSize)
	v.SetDefault("view.absent_fields", string(d.View.AbsentFields))
	v.SetDefault("view.window_radius", d.View.WindowRadius)
	v.SetDefault("export.product", d.Export.Product)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
}

func logsToFile(c types.LogConfig) bool {
	switch strings.ToLower(c.Output) {
	case "", "stderr", "stdout":
		return false
	}
	return true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
