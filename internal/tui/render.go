// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pdiddy/citation-view/internal/paginate"
	"github.com/pdiddy/citation-view/internal/records"
	"github.com/pdiddy/citation-view/internal/view"
	"github.com/pdiddy/citation-view/pkg/types"
)

// tableWidths are the column widths of the table surface, indexed by column.
var tableWidths = [records.ColScore + 1]int{
	records.ColDOI:         24,
	records.ColTitle:       40,
	records.ColJournal:     20,
	records.ColFirstAuthor: 16,
	records.ColYear:        6,
	records.ColSummary:     30,
	records.ColCitations:   9,
	records.ColScore:       6,
}

const defaultWidth = 120

// View implements tea.Model.
func (m Model) View() string {
	v := m.current()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var sections []string
	sections = append(sections, m.renderStatus(v))
	if m.mode != modeNormal {
		sections = append(sections, m.input.View())
	} else if filters := renderFilters(v); filters != "" {
		sections = append(sections, m.styles.Muted.Render(filters))
	}

	chrome := m.renderFooter(v)
	avail := -1
	if m.height > 0 {
		avail = max(1, m.height-len(sections)-lipgloss.Height(chrome))
	}
	body := m.renderBody(v, width, avail)
	if avail > 0 {
		body = clip(body, avail)
	}
	sections = append(sections, body, chrome)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus(v view.View) string {
	parts := []string{
		m.styles.Title.Render("citation-view"),
		m.surface.String(),
		fmt.Sprintf("%d records", v.Loaded),
	}
	if v.Visible != v.Loaded {
		parts = append(parts, fmt.Sprintf("%d matching", v.Visible))
	}
	if v.SelectedCount > 0 {
		parts = append(parts, m.styles.Selected.Render(fmt.Sprintf("%d selected", v.SelectedCount)))
	}
	for _, d := range records.Columns() {
		if s := v.Sort(d.Column); s != records.SortNone {
			parts = append(parts, fmt.Sprintf("sort: %s %s", d.Label, s.Indicator()))
		}
	}
	return strings.Join(parts, " · ")
}

// renderFilters lists the active filters, e.g. `"stat" · title~cancer`.
func renderFilters(v view.View) string {
	var parts []string
	if v.Global != "" {
		parts = append(parts, fmt.Sprintf("%q", v.Global))
	}
	for _, d := range records.Columns() {
		if f := v.Filters[d.Column]; f != "" {
			parts = append(parts, d.Key+"~"+f)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "filters: " + strings.Join(parts, " · ")
}

// renderBody draws the current page. avail is the number of lines the body
// may use, or -1 when the terminal size is unknown.
func (m Model) renderBody(v view.View, width, avail int) string {
	if len(v.Rows) == 0 {
		if v.Loaded == 0 {
			return m.styles.Muted.Render("No records loaded.")
		}
		return m.styles.Muted.Render("No records match the filters.")
	}
	if m.surface == SurfaceCards {
		return m.renderCards(v, width, avail)
	}
	return m.renderTable(v, avail)
}

func (m Model) renderTable(v view.View, avail int) string {
	var b strings.Builder

	b.WriteString("    ")
	for _, d := range records.Columns() {
		label := d.Label
		if ind := v.Sort(d.Column).Indicator(); ind != "" {
			label += " " + ind
		}
		cell := pad(label, tableWidths[d.Column])
		if d.Column == m.column {
			cell = m.styles.HeaderFocus.Render(cell)
		} else {
			cell = m.styles.Header.Render(cell)
		}
		b.WriteString(cell + " ")
	}
	b.WriteByte('\n')

	// Scroll so the cursor row stays below the header.
	offset := 0
	if avail > 1 {
		offset = max(0, m.cursor-(avail-2))
	}

	for i := offset; i < len(v.Rows); i++ {
		row := v.Rows[i]
		line := selectionMark(row) + " "
		for _, d := range records.Columns() {
			text, _ := d.Text(row.Record)
			line += pad(oneLine(text), tableWidths[d.Column]) + " "
		}
		switch {
		case i == m.cursor:
			line = m.styles.Cursor.Render(line)
		case row.Selected:
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		if i < len(v.Rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderCards(v view.View, width, avail int) string {
	cardWidth := max(20, width-4)
	cards := make([]string, 0, len(v.Rows))

	for i, row := range v.Rows {
		r := row.Record
		var lines []string

		title := types.StrOr(r.Title)
		if title == "" {
			title = "(untitled)"
		}
		lines = append(lines, selectionMark(row)+" "+m.styles.Title.Render(title))

		var byline []string
		for _, p := range []*string{r.FirstAuthor, r.Journal} {
			if p != nil && *p != "" {
				byline = append(byline, *p)
			}
		}
		if s, ok := types.IntText(r.YearPublished); ok {
			byline = append(byline, s)
		}
		if len(byline) > 0 {
			lines = append(lines, m.styles.Muted.Render(strings.Join(byline, " · ")))
		}

		lines = append(lines, fmt.Sprintf("Citations: %s   Score: %s",
			intOrDash(r.Citations), intOrDash(r.Score)))

		if link := r.DOILink(); link != "" {
			lines = append(lines, m.styles.Link.Render(link))
		}

		if summary := types.StrOr(r.Summary); summary != "" {
			if m.expanded[rowKey(row)] {
				lines = append(lines, lipgloss.NewStyle().Width(cardWidth-4).Render(summary))
			} else {
				lines = append(lines, ansi.Truncate(oneLine(summary), cardWidth-4, "…"))
			}
		}

		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.CardFocus
		}
		cards = append(cards, style.Width(cardWidth).Render(strings.Join(lines, "\n")))
	}

	// Keep the focused card on screen by dropping cards above it.
	if avail > 0 && m.cursor > 0 {
		used := 0
		start := m.cursor
		for start > 0 && used+lipgloss.Height(cards[start]) <= avail {
			used += lipgloss.Height(cards[start])
			start--
		}
		if used+lipgloss.Height(cards[start]) > avail {
			start++
		}
		cards = cards[min(start, m.cursor):]
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderFooter(v view.View) string {
	var lines []string

	var pages []string
	for _, it := range v.Window {
		label := it.Label()
		if it.Kind == paginate.PageButton && it.Current {
			label = m.styles.PageCurrent.Render(" " + label + " ")
		}
		pages = append(pages, label)
	}
	lines = append(lines, fmt.Sprintf("%s   %s   %d per page",
		v.Footer, strings.Join(pages, " "), v.PageSize))

	lines = append(lines, fmt.Sprintf("%s  e xlsx · r ris · b bib · c csl", v.ExportPrompt))

	switch v.Notice.Level {
	case view.NoticeError:
		lines = append(lines, m.styles.Error.Render(v.Notice.Text))
	case view.NoticeInfo:
		lines = append(lines, m.styles.Info.Render(v.Notice.Text))
	}

	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func selectionMark(row view.Row) string {
	switch {
	case !row.Selectable:
		return " - "
	case row.Selected:
		return "[x]"
	default:
		return "[ ]"
	}
}

func intOrDash(n *int) string {
	if s, ok := types.IntText(n); ok {
		return s
	}
	return "-"
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clip keeps at most n lines of s.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
