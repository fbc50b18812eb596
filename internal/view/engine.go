// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view owns the viewer state for one result set: the record store,
// sort controller, selection, filters, pagination and exporter. Surfaces
// send it abstract events and re-derive what they draw from Snapshot after
// each invalidation signal.
package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citation-view/internal/export"
	"github.com/pdiddy/citation-view/internal/observability"
	"github.com/pdiddy/citation-view/internal/paginate"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/pkg/types"
)

var (
	// ErrInvalidPageSize is returned for a page size outside the configured set.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrPageOutOfRange is returned for a page index past the last page.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Options configures an Engine.
type Options struct {
	PageSizes    []int
	PageSize     int
	WindowRadius int
	Absent       records.AbsentPolicy

	// Exporter serializes and delivers exports. A nil Exporter makes
	// ExportClick fail.
	Exporter *export.Exporter
	Logger   zerolog.Logger
}

// OptionsFromConfig converts the view section of the configuration.
func OptionsFromConfig(cfg types.ViewConfig) (Options, error) {
	policy, err := records.ParseAbsentPolicy(cfg.AbsentFields)
	if err != nil {
		return Options{}, err
	}
	return Options{
		PageSizes:    cfg.PageSizes,
		PageSize:     cfg.PageSize,
		WindowRadius: cfg.WindowRadius,
		Absent:       policy,
	}, nil
}

// Engine serializes every operation on one result set behind a mutex.
// Subscribers are called after the lock is released.
type Engine struct {
	mu sync.Mutex

	store    *records.Store
	sorter   *records.SortController
	sel      *records.Selection
	filters  records.Filters
	global   string
	policy   records.AbsentPolicy
	page     int
	pageSize int

	pageSizes       []int
	defaultPageSize int
	radius          int

	exporter *export.Exporter
	log      zerolog.Logger
	notice   Notice

	subs    map[int]func()
	nextSub int
}

// NewEngine returns an empty engine. The default page size must be one of
// the page sizes.
func NewEngine(opts Options) (*Engine, error) {
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = types.DefaultConfig().View.PageSizes
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, s)
		}
	}
	size := opts.PageSize
	if size == 0 {
		size = sizes[0]
	}
	if !slices.Contains(sizes, size) {
		return nil, fmt.Errorf("%w: default %d is not one of %v", ErrInvalidPageSize, size, sizes)
	}
	radius := opts.WindowRadius
	if radius <= 0 {
		radius = paginate.DefaultRadius
	}

	store := records.NewStore()
	return &Engine{
		store:           store,
		sorter:          records.NewSortController(store),
		sel:             records.NewSelection(),
		policy:          opts.Absent,
		pageSize:        size,
		pageSizes:       slices.Clone(sizes),
		defaultPageSize: size,
		radius:          radius,
		exporter:        opts.Exporter,
		log:             opts.Logger,
		subs:            make(map[int]func()),
	}, nil
}

// Subscribe registers fn to be called after every state change and returns
// a function that removes it.
func (e *Engine) Subscribe(fn func()) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// invalidate releases the lock and then signals every subscriber. Callers
// hold e.mu.
func (e *Engine) invalidate() {
	keys := make([]int, 0, len(e.subs))
	for id := range e.subs {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	fns := make([]func(), 0, len(keys))
	for _, id := range keys {
		fns = append(fns, e.subs[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Load replaces the result set and resets filters, sort, selection and
// pagination.
func (e *Engine) Load(recs []types.Record) {
	e.mu.Lock()
	e.store.Load(recs)
	e.sorter.Reset()
	e.sel.Clear()
	e.filters = records.Filters{}
	e.global = ""
	e.page = 0
	e.pageSize = e.defaultPageSize
	e.notice = Notice{}
	e.log.Info().Int("records", len(recs)).Msg("result set loaded")
	e.invalidate()
}

// ColumnSortClick advances the sort state of c and returns the new state.
// Invalid columns are ignored.
func (e *Engine) ColumnSortClick(c records.Column) records.SortState {
	if !c.Valid() {
		return records.SortNone
	}
	e.mu.Lock()
	state := e.sorter.Click(c)
	e.log.Debug().Str("column", c.String()).Str("state", state.String()).Msg("sort")
	e.invalidate()
	return state
}

// ColumnFilterInput sets the filter text of column c. An unknown column
// leaves the filters alone and is reported as an error notice.
func (e *Engine) ColumnFilterInput(c records.Column, text string) error {
	if !c.Valid() {
		err := fmt.Errorf("%w: %d", records.ErrUnknownColumn, int(c))
		e.mu.Lock()
		e.log.Warn().Err(err).Msg("column filter rejected")
		e.notice = Notice{Level: NoticeError, Text: "Filter not applied: " + err.Error()}
		e.invalidate()
		return err
	}
	e.mu.Lock()
	e.filters[c] = text
	e.clampPage()
	e.invalidate()
	return nil
}

// GlobalFilterInput sets the pattern matched against every field.
func (e *Engine) GlobalFilterInput(text string) {
	e.mu.Lock()
	e.global = text
	e.clampPage()
	e.invalidate()
}

// ClearFilters removes the global pattern and every column filter.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	e.global = ""
	e.filters = records.Filters{}
	e.clampPage()
	e.invalidate()
}

// PageSizeSelect changes the page size and returns to the first page.
func (e *Engine) PageSizeSelect(size int) error {
	e.mu.Lock()
	if !slices.Contains(e.pageSizes, size) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %d is not one of %v", ErrInvalidPageSize, size, e.pageSizes)
	}
	e.pageSize = size
	e.page = 0
	e.invalidate()
	return nil
}

// PageSelect shows page index of the filtered view.
func (e *Engine) PageSelect(index int) error {
	e.mu.Lock()
	n := len(e.visible())
	if !paginate.Valid(n, e.pageSize, index) {
		last := paginate.LastIndex(n, e.pageSize)
		e.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPageOutOfRange, index, last)
	}
	e.page = index
	e.invalidate()
	return nil
}

// SelectionToggle adds or removes id from the selection and reports whether
// id is selected afterwards. Records without an identifier cannot be
// selected.
func (e *Engine) SelectionToggle(id string, checked bool) bool {
	e.mu.Lock()
	selected := e.sel.Toggle(id, checked)
	e.invalidate()
	return selected
}

// Lookup returns the loaded record whose identifier is id.
func (e *Engine) Lookup(id string) (types.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Lookup(id)
}

// SelectVisible selects every record passing the current filters, on every
// page. It returns how many of them were selected and how many were skipped
// for having no identifier.
func (e *Engine) SelectVisible() (selected, skipped int) {
	e.mu.Lock()
	for _, r := range e.visible() {
		if id, ok := r.ID(); ok {
			e.sel.Select(id)
			selected++
		} else {
			skipped++
		}
	}
	e.invalidate()
	return selected, skipped
}

// ClearSelection deselects every record.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	e.sel.Clear()
	e.invalidate()
}

// ExportClick exports the selected records, or the whole store when nothing
// is selected, in store order. Filters never narrow an export. A failure is
// logged and kept as the current notice as well as returned.
func (e *Engine) ExportClick(ctx context.Context, f export.Format) (export.Result, error) {
	e.mu.Lock()
	recs := e.sel.Resolve(e.store)
	loaded := e.store.Len()
	exporter := e.exporter
	e.mu.Unlock()

	log := observability.WithExportContext(e.log, string(f), len(recs))

	var (
		res export.Result
		err error
	)
	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case exporter == nil:
		err = &export.Error{Format: f, Op: "deliver", Err: errors.New("no exporter configured")}
	default:
		res, err = exporter.Export(f, recs, loaded)
	}

	e.mu.Lock()
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		e.notice = Notice{Level: NoticeError, Text: "Export failed: " + err.Error()}
	} else {
		log.Info().Str("file", res.Filename).Str("location", res.Location).Msg("exported")
		e.notice = Notice{Level: NoticeInfo, Text: exportedText(res)}
	}
	e.invalidate()
	return res, err
}

// DismissNotice clears the current notice.
func (e *Engine) DismissNotice() {
	e.mu.Lock()
	e.notice = Notice{}
	e.invalidate()
}

func exportedText(res export.Result) string {
	where := res.Location
	if where == "" {
		where = res.Filename
	}
	noun := "articles"
	if res.Count == 1 {
		noun = "article"
	}
	return fmt.Sprintf("Exported %d %s to %s", res.Count, noun, where)
}

// visible returns the filtered view in store order. Callers hold e.mu.
func (e *Engine) visible() []types.Record {
	return records.Visible(e.store.Records(), e.global, e.filters, e.policy)
}

// clampPage keeps the page index valid after the filtered view shrinks.
// Callers hold e.mu.
func (e *Engine) clampPage() {
	e.page = min(e.page, paginate.LastIndex(len(e.visible()), e.pageSize))
}
