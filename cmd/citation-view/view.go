// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-view/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open the interactive viewer",
	Long: `View opens the interactive viewer on a result set. The table and the card
list share filters, sort, selection and page; tab switches between them.
Press ? for the key bindings. Exports are written to export.dir, or --out-dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	recs, err := loadRecords(ctx, cmd, args)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("out-dir")
	engine, err := newEngine(dir)
	if err != nil {
		return err
	}
	engine.Load(recs)

	vf, err := readViewFlags(cmd)
	if err != nil {
		return err
	}
	if err := vf.apply(engine); err != nil {
		return err
	}

	model := tui.NewModel(ctx, engine)
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

func init() {
	addSourceFlags(viewCmd.Flags())
	addViewFlags(viewCmd.Flags())
	viewCmd.Flags().String("out-dir", "", "directory for exported files (default: export.dir)")

	rootCmd.AddCommand(viewCmd)
}
