// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the viewer.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding // Move the column cursor.
	Right key.Binding

	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	PageSize  key.Binding // Cycle through the configured page sizes.

	Select         key.Binding
	SelectVisible  key.Binding
	ClearSelection key.Binding

	Sort          key.Binding // Sort by the cursor column.
	SortYear      key.Binding // Card surface quick sorts.
	SortCitations key.Binding
	SortScore     key.Binding

	GlobalFilter key.Binding
	ColumnFilter key.Binding
	Clear        key.Binding // Clear filters, or dismiss a notice.

	ExportXLSX   key.Binding
	ExportRIS    key.Binding
	ExportBibTeX key.Binding
	ExportCSL    key.Binding

	SwitchSurface key.Binding
	Expand        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("[", "pgup"),
		key.WithHelp("[", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("]", "pgdown"),
		key.WithHelp("]", "next page"),
	),
	FirstPage: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first page"),
	),
	LastPage: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last page"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "page size"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectVisible: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all matching"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear selection"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort column"),
	),
	SortYear: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "sort year"),
	),
	SortCitations: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "sort citations"),
	),
	SortScore: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "sort score"),
	),
	GlobalFilter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ColumnFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter column"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filters"),
	),
	ExportXLSX: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "excel"),
	),
	ExportRIS: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "ris"),
	),
	ExportBibTeX: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bibtex"),
	),
	ExportCSL: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "csl-yaml"),
	),
	SwitchSurface: key.NewBinding(
		key.WithKeys("v", "tab"),
		key.WithHelp("v", "table/cards"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "expand summary"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Sort, k.GlobalFilter, k.ColumnFilter, k.NextPage, k.SwitchSurface, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Expand},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.PageSize},
		{k.Select, k.SelectVisible, k.ClearSelection, k.Sort, k.SortYear, k.SortCitations, k.SortScore},
		{k.GlobalFilter, k.ColumnFilter, k.Clear},
		{k.ExportXLSX, k.ExportRIS, k.ExportBibTeX, k.ExportCSL},
		{k.SwitchSurface, k.Help, k.Quit},
	}
}
