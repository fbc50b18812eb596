// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-view/internal/export"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/internal/view"
	"github.com/pdiddy/citation-view/pkg/types"
)

// --- test helpers ---

type memorySink struct {
	files map[string][]byte
	err   error
}

func (m *memorySink) Deliver(filename string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[filename] = data
	return "mem://" + filename, nil
}

const longSummary = "Patients receiving statins showed a modest reduction in cancer incidence " +
	"across a ten year follow up period, with the effect concentrated in colorectal " +
	"and prostate cancers and no signal for breast cancer ENDMARK"

func testRecords() []types.Record {
	return []types.Record{
		{
			DOI: types.Str("10.1/a"), Title: types.Str("Cancer immunotherapy outcomes"),
			Journal: types.Str("The Lancet"), FirstAuthor: types.Str("Smith J"),
			YearPublished: types.Int(2019), Citations: types.Int(120), Score: types.Int(9),
		},
		{
			DOI: types.Str("10.1/b"), Title: types.Str("Statins and cancer risk"),
			Journal: types.Str("BMJ"), FirstAuthor: types.Str("Nguyen T"),
			YearPublished: types.Int(2015), Summary: types.Str(longSummary),
			Citations: types.Int(300), Score: types.Int(7),
		},
		{
			Title: types.Str("Preprint without identifier"), Score: types.Int(3),
		},
	}
}

func testEngine(t *testing.T, sink export.Sink) *view.Engine {
	t.Helper()
	e, err := view.NewEngine(view.Options{
		Exporter: &export.Exporter{
			Product: "BibliZap",
			Sink:    sink,
			Now:     func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) },
		},
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	e.Load(testRecords())
	return e
}

func testModel(t *testing.T, sink export.Sink) (Model, *view.Engine) {
	t.Helper()
	e := testEngine(t, sink)
	m := NewModel(context.Background(), e)
	t.Cleanup(m.Close)
	return m, e
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// --- surfaces ---

func TestSelectionVisibleOnBothSurfaces(t *testing.T) {
	m, e := testModel(t, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.table.view.Rows[0].Selected)
	assert.True(t, m.cards.view.Rows[0].Selected)
	assert.Equal(t, 1, e.Snapshot().SelectedCount)

	m = press(t, m, runes("v"))
	assert.Equal(t, SurfaceCards, m.Surface())
	assert.Contains(t, m.View(), "[x]")
	assert.Contains(t, m.View(), "1 selected")

	// Deselect from the card surface; the table follows.
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.table.view.Rows[0].Selected)
}

func TestSortOnTableShowsOnCards(t *testing.T) {
	m, _ := testModel(t, nil)

	// Column cursor starts on Title; move right twice to First author,
	// then left once to Journal.
	m = press(t, m, runes("l"), runes("l"), runes("h"), runes("s"))
	assert.Equal(t, records.SortAscending, m.cards.view.Sort(records.ColJournal))
	// The preprint has no journal and sorts first.
	assert.Equal(t, "BMJ", types.StrOr(m.cards.view.Rows[1].Record.Journal))

	m = press(t, m, runes("v"))
	assert.Contains(t, m.View(), "sort: Journal ▲")
}

func TestCardQuickSorts(t *testing.T) {
	m, _ := testModel(t, nil)

	// Quick sort keys do nothing on the table surface.
	m = press(t, m, runes("3"))
	assert.Equal(t, records.SortNone, m.table.view.Sort(records.ColScore))

	m = press(t, m, runes("v"), runes("3"))
	assert.Equal(t, records.SortAscending, m.table.view.Sort(records.ColScore))

	m = press(t, m, runes("1"))
	assert.Equal(t, records.SortNone, m.cards.view.Sort(records.ColScore))
	assert.Equal(t, records.SortAscending, m.cards.view.Sort(records.ColYear))
	assert.Equal(t, "10.1/b", types.StrOr(m.cards.view.Rows[1].Record.DOI))
}

func TestSelectAllMatchingAndClear(t *testing.T) {
	m, e := testModel(t, nil)

	m = press(t, m, runes("a"))
	// The preprint has no DOI and stays unselected.
	assert.Equal(t, 2, e.Snapshot().SelectedCount)
	assert.Contains(t, m.View(), "Download 2 selected articles as:")

	m = press(t, m, runes("x"))
	assert.Zero(t, m.table.view.SelectedCount)
}

func TestRowWithoutIdentifierCannotBeSelected(t *testing.T) {
	m, e := testModel(t, nil)

	m = press(t, m, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, 2, m.cursor)
	assert.Zero(t, e.Snapshot().SelectedCount)
	assert.Contains(t, m.View(), " - ")
}

// --- filters ---

func TestGlobalFilterAppliesWhileTyping(t *testing.T) {
	m, e := testModel(t, nil)

	m = press(t, m, runes("/"), runes("s"), runes("t"), runes("a"))
	assert.Equal(t, modeGlobalFilter, m.mode)
	assert.Equal(t, "sta", e.Snapshot().Global)
	assert.Len(t, m.table.view.Rows, 1)

	// "q" is text while the input has focus.
	m = press(t, m, runes("q"))
	assert.Equal(t, "staq", e.Snapshot().Global)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "sta", e.Snapshot().Global)
	assert.Contains(t, m.View(), `filters: "sta"`)
}

func TestColumnFilterEscClears(t *testing.T) {
	m, e := testModel(t, nil)

	m = press(t, m, runes("f"), runes("c"), runes("a"), runes("n"))
	assert.Equal(t, "can", e.Snapshot().Filters[records.ColTitle])
	assert.Len(t, m.table.view.Rows, 2)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeNormal, m.mode)
	assert.True(t, e.Snapshot().Filters.IsEmpty())
	assert.Len(t, m.table.view.Rows, 3)
}

func TestEscClearsFilters(t *testing.T) {
	m, e := testModel(t, nil)
	e.GlobalFilterInput("statins")
	m = press(t, m, invalidatedMsg{})
	require.Len(t, m.table.view.Rows, 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.table.view.Rows, 3)
}

// --- pagination ---

func TestPageKeys(t *testing.T) {
	e, err := view.NewEngine(view.Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	recs := make([]types.Record, 25)
	for i := range recs {
		recs[i] = types.Record{Score: types.Int(100 - i)}
	}
	e.Load(recs)
	m := NewModel(context.Background(), e)
	t.Cleanup(m.Close)

	m = press(t, m, runes("j"), runes("]"))
	assert.Equal(t, 1, m.table.view.Page)
	assert.Zero(t, m.cursor)
	assert.Len(t, m.table.view.Rows, 15)
	assert.Contains(t, m.View(), "Showing 11 to 25 of 25 entries")

	// Past the last page nothing changes.
	m = press(t, m, runes("]"))
	assert.Equal(t, 1, m.table.view.Page)

	m = press(t, m, runes("["))
	assert.Equal(t, 0, m.table.view.Page)

	m = press(t, m, runes("G"))
	assert.Equal(t, 1, m.table.view.Page)

	m = press(t, m, runes("+"))
	assert.Equal(t, 50, m.table.view.PageSize)
	assert.Zero(t, m.table.view.Page)

	m = press(t, m, runes("+"), runes("+"), runes("+"))
	assert.Equal(t, 10, m.table.view.PageSize)
}

// --- export ---

func TestExportKeyWritesAndShowsNotice(t *testing.T) {
	sink := &memorySink{}
	m, _ := testModel(t, sink)

	next, cmd := m.Update(runes("r"))
	m = next.(Model)
	require.NotNil(t, cmd)
	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, "BibliZap-all-2026-03-01T09:30:00Z.ris", done.result.Filename)
	assert.Contains(t, sink.files, done.result.Filename)

	m = press(t, m, done)
	assert.Contains(t, m.View(), "Exported 3 articles to mem://")
	assert.Contains(t, m.View(), "Download everything as:")
}

func TestExportSelectedQualifier(t *testing.T) {
	sink := &memorySink{}
	m, _ := testModel(t, sink)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Contains(t, m.View(), "Download 1 selected article as:")

	_, cmd := m.Update(runes("b"))
	done := cmd().(exportDoneMsg)
	require.NoError(t, done.err)
	assert.Equal(t, export.QualifierSelected, done.result.Qualifier)
	assert.Equal(t, 1, strings.Count(string(done.result.Data), "@article{"))
}

func TestRejectedColumnFilterRendersNotice(t *testing.T) {
	m, e := testModel(t, nil)
	m.column = records.Column(42)
	m.mode = modeColumnFilter
	m.input.Focus()

	m = press(t, m, runes("x"))
	assert.Equal(t, modeNormal, m.mode)
	assert.Contains(t, m.View(), "Filter not applied: unknown column")
	assert.Equal(t, 3, e.Snapshot().Visible)
}

func TestExportFailureRendersNotice(t *testing.T) {
	m, _ := testModel(t, &memorySink{err: os.ErrPermission})

	_, cmd := m.Update(runes("e"))
	done := cmd().(exportDoneMsg)
	require.Error(t, done.err)

	m = press(t, m, done)
	assert.Contains(t, m.View(), "Export failed: ")
	assert.Contains(t, m.View(), "permission denied")

	// Esc dismisses the notice before it clears filters.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Export failed")
}

// --- invalidation ---

func TestExternalLoadInvalidatesBothSurfaces(t *testing.T) {
	m, e := testModel(t, nil)

	e.Load([]types.Record{{DOI: types.Str("10.9/new"), Score: types.Int(1)}})

	msg := m.Init()()
	require.IsType(t, invalidatedMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.NotNil(t, cmd, "model keeps listening")
	assert.Len(t, m.table.view.Rows, 1)
	assert.Len(t, m.cards.view.Rows, 1)
	assert.Equal(t, "10.9/new", types.StrOr(m.cards.view.Rows[0].Record.DOI))
}

func TestCloseUnsubscribes(t *testing.T) {
	e := testEngine(t, nil)
	m := NewModel(context.Background(), e)
	m.Close()

	e.GlobalFilterInput("statins")
	assert.False(t, m.table.dirty.Load())
	assert.False(t, m.cards.dirty.Load())
}

// --- rendering ---

func TestCardSummaryExpands(t *testing.T) {
	m, _ := testModel(t, nil)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 60}, runes("v"), runes("j"))

	assert.NotContains(t, m.View(), "ENDMARK")
	assert.Contains(t, m.View(), "https://doi.org/10.1/b")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "ENDMARK")
}

func TestTableView(t *testing.T) {
	m, _ := testModel(t, nil)
	m = press(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})

	out := m.View()
	assert.Contains(t, out, "citation-view · table · 3 records")
	assert.Contains(t, out, "Cancer immunotherapy outcomes")
	assert.Contains(t, out, "Showing 1 to 3 of 3 entries")
	assert.Contains(t, out, "10 per page")
}

func TestEmptyView(t *testing.T) {
	e, err := view.NewEngine(view.Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	m := NewModel(context.Background(), e)
	t.Cleanup(m.Close)

	assert.Contains(t, m.View(), "No records loaded.")
	assert.Contains(t, m.View(), "Showing 0 to 0 of 0 entries")
}

func TestHelpToggle(t *testing.T) {
	m, _ := testModel(t, nil)
	m = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "csl-yaml")
}

func TestQuit(t *testing.T) {
	m, _ := testModel(t, nil)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
