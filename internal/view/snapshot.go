// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"slices"

	"github.com/pdiddy/citation-view/internal/paginate"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/pkg/types"
)

// NoticeLevel grades a Notice.
type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeInfo
	NoticeError
)

// Notice is a one-line message for the user, such as an export result.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Row is one record on the current page.
type Row struct {
	Record types.Record

	// Position is the one-based position in the filtered view.
	Position   int
	Selected   bool
	Selectable bool
}

// View is everything a surface needs to draw the current state.
type View struct {
	Rows []Row

	// Visible counts the records passing the filters; Loaded counts the
	// whole store.
	Visible int
	Loaded  int

	Page       int
	PageSize   int
	PageSizes  []int
	TotalPages int
	LastPage   int
	Window     []paginate.Item

	Sorts   [records.ColScore + 1]records.SortState
	Filters records.Filters
	Global  string
	Absent  records.AbsentPolicy

	SelectedCount int
	Footer        string
	ExportPrompt  string
	Notice        Notice
}

// Sort returns the indicator state of column c.
func (v View) Sort(c records.Column) records.SortState {
	if !c.Valid() {
		return records.SortNone
	}
	return v.Sorts[c]
}

// Snapshot derives the current page and its surroundings from the engine
// state.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	vis := e.visible()
	n := len(vis)
	start, end := paginate.Bounds(n, e.pageSize, e.page)
	total := paginate.TotalPages(n, e.pageSize)

	v := View{
		Visible:       n,
		Loaded:        e.store.Len(),
		Page:          e.page,
		PageSize:      e.pageSize,
		PageSizes:     slices.Clone(e.pageSizes),
		TotalPages:    total,
		LastPage:      paginate.LastIndex(n, e.pageSize),
		Window:        paginate.Window(total, e.page, e.radius),
		Filters:       e.filters,
		Global:        e.global,
		Absent:        e.policy,
		SelectedCount: e.sel.Count(),
		Footer:        paginate.Showing(n, e.pageSize, e.page),
		Notice:        e.notice,
	}
	for _, d := range records.Columns() {
		v.Sorts[d.Column] = e.sorter.State(d.Column)
	}

	v.Rows = make([]Row, 0, end-start)
	for i, r := range vis[start:end] {
		_, ok := r.ID()
		v.Rows = append(v.Rows, Row{
			Record:     r,
			Position:   start + i + 1,
			Selected:   e.sel.IsSelected(r),
			Selectable: ok,
		})
	}

	v.ExportPrompt = exportPrompt(v.SelectedCount)
	return v
}

func exportPrompt(selected int) string {
	switch selected {
	case 0:
		return "Download everything as:"
	case 1:
		return "Download 1 selected article as:"
	default:
		return fmt.Sprintf("Download %d selected articles as:", selected)
	}
}
