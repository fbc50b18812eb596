// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-view/internal/view"
	"github.com/pdiddy/citation-view/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "Print one page of the result set",
	Long: `List applies the filter, sort and paging flags to a result set and prints
the resulting page as a table, or as JSON with --json. --all prints every
record passing the filters instead of a single page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	recs, err := loadRecords(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	engine, err := newEngine("")
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

	all, _ := cmd.Flags().GetBool("all")
	rows := pageRows(engine, all)
	v := engine.Snapshot()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return formatJSON(rows, os.Stdout)
	}
	footer := v.Footer
	if all {
		footer = fmt.Sprintf("%d of %d records", v.Visible, v.Loaded)
	}
	formatTable(rows, footer, os.Stdout)
	return nil
}

// pageRows returns the rows of the current page, or of every page when all
// is set. Walking the pages leaves the engine on its last page.
func pageRows(e *view.Engine, all bool) []view.Row {
	v := e.Snapshot()
	if !all {
		return v.Rows
	}
	rows := make([]view.Row, 0, v.Visible)
	for p := 0; p <= v.LastPage; p++ {
		if err := e.PageSelect(p); err != nil {
			break
		}
		rows = append(rows, e.Snapshot().Rows...)
	}
	return rows
}

// formatTable writes rows as a human-readable table to w.
func formatTable(rows []view.Row, footer string, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-50s  %-20s  %-4s  %-9s  %s\n",
		"#", "DOI", "Title", "First author", "Year", "Citations", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, row := range rows {
		r := row.Record
		fmt.Fprintf(w, "%-4d  %-28s  %-50s  %-20s  %-4s  %-9s  %s\n",
			row.Position,
			truncate(types.StrOr(r.DOI), 28),
			truncate(types.StrOr(r.Title), 50),
			truncate(types.StrOr(r.FirstAuthor), 20),
			intText(r.YearPublished),
			intText(r.Citations),
			intText(r.Score))
	}

	fmt.Fprintf(w, "\n%s\n", footer)
}

// formatJSON writes the records of rows as indented JSON to w.
func formatJSON(rows []view.Row, w io.Writer) error {
	recs := make([]types.Record, len(rows))
	for i, row := range rows {
		recs[i] = row.Record
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func intText(n *int) string {
	s, _ := types.IntText(n)
	return s
}

func init() {
	addSourceFlags(listCmd.Flags())
	addViewFlags(listCmd.Flags())
	listCmd.Flags().Bool("all", false, "print every matching record instead of one page")
	listCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(listCmd)
}
