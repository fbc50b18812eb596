// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by both surfaces.
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	HeaderFocus lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	Link        lipgloss.Style
	Card        lipgloss.Style
	CardFocus   lipgloss.Style
	PageCurrent lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
}

// DefaultStyles is a plain terminal palette.
var DefaultStyles = Styles{
	Title:       lipgloss.NewStyle().Bold(true),
	Header:      lipgloss.NewStyle().Bold(true).Underline(true),
	HeaderFocus: lipgloss.NewStyle().Bold(true).Reverse(true),
	Cursor:      lipgloss.NewStyle().Reverse(true),
	Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
	Card:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	CardFocus:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
	PageCurrent: lipgloss.NewStyle().Bold(true).Reverse(true),
	Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}
