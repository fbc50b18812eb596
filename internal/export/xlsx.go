// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/citation-view/pkg/types"
)

const (
	sheetName     = "Sheet1"
	dataRowHeight = 150
	wideColWidth  = 52
	maxAutoWidth  = 100
)

// workbookColumn is one column of the workbook layout.
type workbookColumn struct {
	header string
	wide   bool
	value  func(types.Record) any
}

// workbookColumns is the fixed column order of the workbook export.
var workbookColumns = []workbookColumn{
	{"doi", false, func(r types.Record) any { return types.StrOr(r.DOI) }},
	{"Title", true, func(r types.Record) any { return types.StrOr(r.Title) }},
	{"Journal", true, func(r types.Record) any { return types.StrOr(r.Journal) }},
	{"Year published", false, func(r types.Record) any { return types.IntOr(r.YearPublished) }},
	{"Summary", true, func(r types.Record) any { return types.StrOr(r.Summary) }},
	{"Citations", false, func(r types.Record) any { return types.IntOr(r.Citations) }},
	{"Score", false, func(r types.Record) any { return types.IntOr(r.Score) }},
}

// Workbook writes an .xlsx spreadsheet: a header row and one row per record,
// wrapped top-aligned text, tall data rows, wide text columns, other columns
// fitted to their content, and an autofilter over the whole table.
type Workbook struct{}

func (Workbook) Format() Format    { return FormatXLSX }
func (Workbook) Extension() string { return "xlsx" }

func (Workbook) Serialize(recs []types.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	lastRow := len(recs) + 1
	widths := make([]int, len(workbookColumns))

	for c, col := range workbookColumns {
		if err := setCell(f, c+1, 1, col.header); err != nil {
			return nil, err
		}
		widths[c] = utf8.RuneCountInString(col.header)
	}

	for i, r := range recs {
		row := i + 2
		for c, col := range workbookColumns {
			v := col.value(r)
			if err := setCell(f, c+1, row, v); err != nil {
				return nil, err
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(fmt.Sprint(v)))
		}
		if err := f.SetRowHeight(sheetName, row, dataRowHeight); err != nil {
			return nil, fmt.Errorf("setting height of row %d: %w", row, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating cell style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(workbookColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetColStyle(sheetName, "A:"+lastCol, style); err != nil {
		return nil, fmt.Errorf("styling columns: %w", err)
	}
	bottomRight := fmt.Sprintf("%s%d", lastCol, lastRow)
	if err := f.SetCellStyle(sheetName, "A1", bottomRight, style); err != nil {
		return nil, fmt.Errorf("styling cells: %w", err)
	}

	for c, col := range workbookColumns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		width := float64(min(widths[c]+2, maxAutoWidth))
		if col.wide {
			width = wideColWidth
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("setting width of column %s: %w", name, err)
		}
	}

	if err := f.AutoFilter(sheetName, "A1:"+bottomRight, nil); err != nil {
		return nil, fmt.Errorf("adding autofilter: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, cell, v); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}
	return nil
}
