// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-view/internal/export"
	"github.com/pdiddy/citation-view/internal/view"
)

// errNoFilterMatch is returned when --filter or --global selects nothing.
var errNoFilterMatch = errors.New("no records with a DOI match the filter")

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a result set as xlsx, ris, bib or csl",
	Long: `Export writes the selected records to a file named
<product>-<all|selected>-<timestamp>.<ext> in export.dir, or --out-dir.

Records are selected by DOI with --select, or as every record with a DOI
passing --filter and --global. A filter that selects nothing is an error.
With no selection flags the whole result set is exported.

Records are written in the result set's ranking order, or in the order given
by --sort.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	recs, err := loadRecords(ctx, cmd, args)
	if err != nil {
		return err
	}

	dir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	engine, err := newEngine(dir)
	if err != nil {
		return err
	}
	engine.Load(recs)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	ids, err := cmd.Flags().GetStringSlice("select")
	if err != nil {
		return err
	}
	vf, err := readViewFlags(cmd)
	if err != nil {
		return err
	}

	skipped, err := selectRecords(engine, vf, ids)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("matching records without a DOI left out")
		fmt.Fprintf(os.Stderr, "Skipped %d matching record(s) without a DOI\n", skipped)
	}
	vf.applySort(engine)

	res, err := engine.ExportClick(ctx, export.Format(strings.ToLower(format)))
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d record(s) to %s\n", res.Count, res.Location)
	return nil
}

// selectRecords selects the DOIs in ids and, when a filter is given, every
// record with a DOI passing it. Filters are cleared afterwards; they never
// narrow an export by themselves. It returns how many filter matches were
// skipped for having no DOI.
func selectRecords(e *view.Engine, vf viewFlags, ids []string) (int, error) {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := e.Lookup(id); !ok {
			return 0, fmt.Errorf("select %q: no record with that DOI", id)
		}
		e.SelectionToggle(id, true)
	}
	if !vf.hasFilters() {
		return 0, nil
	}

	if err := vf.applyFilters(e); err != nil {
		return 0, err
	}
	selected, skipped := e.SelectVisible()
	e.ClearFilters()
	if selected == 0 {
		if skipped > 0 {
			return skipped, fmt.Errorf("%w: %d matching record(s) have no DOI", errNoFilterMatch, skipped)
		}
		return 0, errNoFilterMatch
	}
	return skipped, nil
}

func init() {
	addSourceFlags(exportCmd.Flags())
	exportCmd.Flags().String("format", "xlsx", "export format: "+strings.Join(export.Names(), ", "))
	exportCmd.Flags().StringSlice("select", nil, "DOIs to export (comma-separated or repeated)")
	exportCmd.Flags().StringArray("filter", nil, "select records passing column=text (repeatable)")
	exportCmd.Flags().String("global", "", "select records matching this pattern in any field")
	exportCmd.Flags().String("sort", "", "write records sorted as column:asc or column:desc")
	exportCmd.Flags().String("out-dir", "", "directory for the exported file (default: export.dir)")

	rootCmd.AddCommand(exportCmd)
}
