// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal viewer: a table surface and a card
// surface over one view.Engine.
package tui

import (
	"context"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/citation-view/internal/export"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/internal/view"
)

// inputMode says where typed characters go.
type inputMode int

const (
	modeNormal inputMode = iota
	modeGlobalFilter
	modeColumnFilter
)

// exportDoneMsg carries the outcome of an export started from the keyboard.
// The engine has already recorded it as a notice.
type exportDoneMsg struct {
	result export.Result
	err    error
}

// Model is the top-level bubbletea model of the viewer.
type Model struct {
	ctx    context.Context
	engine *view.Engine
	keys   KeyMap
	styles Styles
	help   help.Model

	surface Surface
	table   *surfaceState
	cards   *surfaceState
	signal  chan struct{}

	cursor   int
	column   records.Column
	expanded map[string]bool

	mode   inputMode
	input  textinput.Model
	width  int
	height int
}

// NewModel builds a viewer over engine. Exports run with ctx.
func NewModel(ctx context.Context, engine *view.Engine) Model {
	signal := make(chan struct{}, 1)

	input := textinput.New()
	input.CharLimit = 200
	input.Placeholder = "type to filter"

	return Model{
		ctx:      ctx,
		engine:   engine,
		keys:     DefaultKeyMap,
		styles:   DefaultStyles,
		help:     help.New(),
		surface:  SurfaceTable,
		table:    newSurfaceState(engine, signal),
		cards:    newSurfaceState(engine, signal),
		signal:   signal,
		column:   records.ColTitle,
		expanded: make(map[string]bool),
		input:    input,
	}
}

// Close removes the model's engine subscriptions.
func (m Model) Close() {
	m.table.unsubscribe()
	m.cards.unsubscribe()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForInvalidation(m.signal)
}

// Surface returns the surface being shown.
func (m Model) Surface() Surface {
	return m.surface
}

// current returns the view of the surface being shown.
func (m Model) current() view.View {
	if m.surface == SurfaceCards {
		return m.cards.view
	}
	return m.table.view
}

// sync refreshes both surfaces and keeps the cursor on the page.
func (m *Model) sync() {
	m.table.refresh(m.engine)
	m.cards.refresh(m.engine)
	rows := len(m.current().Rows)
	m.cursor = max(0, min(m.cursor, rows-1))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-20)
		return m, nil

	case invalidatedMsg:
		m.sync()
		return m, waitForInvalidation(m.signal)

	case exportDoneMsg:
		m.sync()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.handleInputKeys(msg)
		}
		cmd := m.handleKeys(msg)
		m.sync()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	v := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.SwitchSurface):
		if m.surface == SurfaceTable {
			m.surface = SurfaceCards
		} else {
			m.surface = SurfaceTable
		}

	case key.Matches(msg, m.keys.Up):
		m.cursor--

	case key.Matches(msg, m.keys.Down):
		m.cursor++

	case key.Matches(msg, m.keys.Left):
		if m.column > records.ColDOI {
			m.column--
		}

	case key.Matches(msg, m.keys.Right):
		if m.column < records.ColScore {
			m.column++
		}

	case key.Matches(msg, m.keys.PrevPage):
		m.goToPage(v.Page - 1)

	case key.Matches(msg, m.keys.NextPage):
		m.goToPage(v.Page + 1)

	case key.Matches(msg, m.keys.FirstPage):
		m.goToPage(0)

	case key.Matches(msg, m.keys.LastPage):
		m.goToPage(v.LastPage)

	case key.Matches(msg, m.keys.PageSize):
		i := slices.Index(v.PageSizes, v.PageSize)
		next := v.PageSizes[(i+1)%len(v.PageSizes)]
		if err := m.engine.PageSizeSelect(next); err == nil {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Select):
		if row, ok := m.cursorRow(); ok {
			if id, ok := row.Record.ID(); ok {
				m.engine.SelectionToggle(id, !row.Selected)
			}
		}

	case key.Matches(msg, m.keys.SelectVisible):
		m.engine.SelectVisible()

	case key.Matches(msg, m.keys.ClearSelection):
		m.engine.ClearSelection()

	case key.Matches(msg, m.keys.Sort):
		m.engine.ColumnSortClick(m.column)

	case m.surface == SurfaceCards && key.Matches(msg, m.keys.SortYear):
		m.engine.ColumnSortClick(records.ColYear)

	case m.surface == SurfaceCards && key.Matches(msg, m.keys.SortCitations):
		m.engine.ColumnSortClick(records.ColCitations)

	case m.surface == SurfaceCards && key.Matches(msg, m.keys.SortScore):
		m.engine.ColumnSortClick(records.ColScore)

	case m.surface == SurfaceCards && key.Matches(msg, m.keys.Expand):
		if row, ok := m.cursorRow(); ok {
			k := rowKey(row)
			m.expanded[k] = !m.expanded[k]
		}

	case key.Matches(msg, m.keys.GlobalFilter):
		m.mode = modeGlobalFilter
		m.input.Prompt = "Search: "
		m.input.SetValue(v.Global)
		m.input.CursorEnd()
		return m.input.Focus()

	case key.Matches(msg, m.keys.ColumnFilter):
		m.mode = modeColumnFilter
		m.input.Prompt = m.column.Describe().Label + ": "
		m.input.SetValue(v.Filters[m.column])
		m.input.CursorEnd()
		return m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		if v.Notice.Level != view.NoticeNone {
			m.engine.DismissNotice()
		} else {
			m.engine.ClearFilters()
		}

	case key.Matches(msg, m.keys.ExportXLSX):
		return m.export(export.FormatXLSX)

	case key.Matches(msg, m.keys.ExportRIS):
		return m.export(export.FormatRIS)

	case key.Matches(msg, m.keys.ExportBibTeX):
		return m.export(export.FormatBibTeX)

	case key.Matches(msg, m.keys.ExportCSL):
		return m.export(export.FormatCSL)
	}
	return nil
}

// handleInputKeys routes keystrokes to the filter input. Filters apply as
// the user types; Enter keeps the text, Esc clears it.
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case tea.KeyEsc:
		m.input.SetValue("")
		m.applyInput()
		m.mode = modeNormal
		m.input.Blur()
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput()
	m.sync()
	return m, cmd
}

func (m *Model) applyInput() {
	switch m.mode {
	case modeGlobalFilter:
		m.engine.GlobalFilterInput(m.input.Value())
	case modeColumnFilter:
		if err := m.engine.ColumnFilterInput(m.column, m.input.Value()); err != nil {
			// The engine shows the error as a notice.
			m.mode = modeNormal
			m.input.Blur()
		}
	}
}

// goToPage ignores indices past either end.
func (m *Model) goToPage(index int) {
	if err := m.engine.PageSelect(index); err == nil {
		m.cursor = 0
	}
}

func (m *Model) export(f export.Format) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		res, err := engine.ExportClick(ctx, f)
		return exportDoneMsg{result: res, err: err}
	}
}

func (m Model) cursorRow() (view.Row, bool) {
	rows := m.current().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return view.Row{}, false
	}
	return rows[m.cursor], true
}

// rowKey identifies a row for the expanded-summary set.
func rowKey(row view.Row) string {
	if id, ok := row.Record.ID(); ok {
		return id
	}
	return "#" + strconv.Itoa(row.Position)
}
