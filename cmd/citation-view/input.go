// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/citation-view/internal/export"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/internal/source"
	"github.com/pdiddy/citation-view/internal/view"
	"github.com/pdiddy/citation-view/pkg/types"
)

// addSourceFlags declares how a command finds its result set.
func addSourceFlags(fs *pflag.FlagSet) {
	fs.String("cache", "", "load the result set stored under this cache key instead of a file")
}

// addViewFlags declares the filter, sort and paging flags shared by list and
// export.
func addViewFlags(fs *pflag.FlagSet) {
	fs.StringArray("filter", nil, "column filter as column=text (repeatable)")
	fs.String("global", "", "pattern matched against every field")
	fs.String("sort", "", "sort as column:asc or column:desc")
	fs.Int("page-size", 0, "records per page (one of view.page_sizes)")
	fs.Int("page", 1, "page number, starting at 1")
}

// loadRecords reads the result set named by args[0] or by --cache.
func loadRecords(ctx context.Context, cmd *cobra.Command, args []string) ([]types.Record, error) {
	key, _ := cmd.Flags().GetString("cache")
	switch {
	case key != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a file or --cache, not both")
	case key != "":
		c, err := source.Open(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return c.Get(ctx, key)
	case len(args) == 0:
		return nil, fmt.Errorf("no result set: give a file, \"-\" for stdin, or --cache <key>")
	default:
		return source.LoadFile(args[0])
	}
}

// newEngine builds an engine from the configuration, exporting into dir.
func newEngine(dir string) (*view.Engine, error) {
	opts, err := view.OptionsFromConfig(cfg.View)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = cfg.Export.Dir
	}
	opts.Exporter = &export.Exporter{
		Product: cfg.Export.Product,
		Sink:    export.FileSink{Dir: dir},
	}
	opts.Logger = logger
	return view.NewEngine(opts)
}

// viewFlags are the parsed filter, sort and paging flags.
type viewFlags struct {
	filters  map[records.Column]string
	global   string
	sortCol  records.Column
	sortDir  records.SortState
	pageSize int
	page     int
}

// readViewFlags reads whichever of the view flags cmd declares.
func readViewFlags(cmd *cobra.Command) (viewFlags, error) {
	var vf viewFlags
	fs := cmd.Flags()

	if fs.Lookup("filter") != nil {
		raw, err := fs.GetStringArray("filter")
		if err != nil {
			return vf, err
		}
		if vf.filters, err = parseFilters(raw); err != nil {
			return vf, err
		}
	}
	if fs.Lookup("global") != nil {
		global, err := fs.GetString("global")
		if err != nil {
			return vf, err
		}
		vf.global = global
	}
	if fs.Lookup("sort") != nil {
		s, err := fs.GetString("sort")
		if err != nil {
			return vf, err
		}
		if vf.sortCol, vf.sortDir, err = parseSort(s); err != nil {
			return vf, err
		}
	}
	if fs.Lookup("page-size") != nil {
		size, err := fs.GetInt("page-size")
		if err != nil {
			return vf, err
		}
		vf.pageSize = size
	}
	if fs.Lookup("page") != nil {
		page, err := fs.GetInt("page")
		if err != nil {
			return vf, err
		}
		vf.page = page
	}
	return vf, nil
}

// hasFilters reports whether a column filter or global pattern was given.
func (vf viewFlags) hasFilters() bool {
	return len(vf.filters) > 0 || vf.global != ""
}

// apply replays the flags as engine events, in the order a user would
// click them.
func (vf viewFlags) apply(e *view.Engine) error {
	if err := vf.applyFilters(e); err != nil {
		return err
	}
	vf.applySort(e)
	return vf.applyPaging(e)
}

func (vf viewFlags) applyFilters(e *view.Engine) error {
	for c, text := range vf.filters {
		if err := e.ColumnFilterInput(c, text); err != nil {
			return err
		}
	}
	if vf.global != "" {
		e.GlobalFilterInput(vf.global)
	}
	return nil
}

// applySort clicks the sort column until it reaches the requested direction.
func (vf viewFlags) applySort(e *view.Engine) {
	if vf.sortDir == records.SortNone {
		return
	}
	for state := records.SortNone; state != vf.sortDir; {
		state = e.ColumnSortClick(vf.sortCol)
	}
}

func (vf viewFlags) applyPaging(e *view.Engine) error {
	if vf.pageSize != 0 {
		if err := e.PageSizeSelect(vf.pageSize); err != nil {
			return err
		}
	}
	if vf.page > 1 {
		if err := e.PageSelect(vf.page - 1); err != nil {
			return err
		}
	}
	return nil
}

// parseFilters turns column=text pairs into column filters.
func parseFilters(raw []string) (map[records.Column]string, error) {
	out := make(map[records.Column]string, len(raw))
	for _, kv := range raw {
		key, text, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("filter %q: want column=text", kv)
		}
		c, err := records.ParseColumn(key)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", kv, err)
		}
		out[c] = text
	}
	return out, nil
}

// parseSort reads column:asc or column:desc. A bare column sorts ascending
// and an empty string leaves the default order.
func parseSort(s string) (records.Column, records.SortState, error) {
	if s == "" {
		return records.ColScore, records.SortNone, nil
	}
	key, dir, _ := strings.Cut(s, ":")
	c, err := records.ParseColumn(key)
	if err != nil {
		return 0, records.SortNone, fmt.Errorf("sort %q: %w", s, err)
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		return c, records.SortAscending, nil
	case "desc":
		return c, records.SortDescending, nil
	default:
		return 0, records.SortNone, fmt.Errorf("sort %q: direction must be asc or desc", s)
	}
}
