// Package workbook serializes extraction tables to an XLSX workbook with one
// sheet per table.
package workbook

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/table"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 80
)

// Writer renders tables into XLSX.
type Writer struct {
	logger   logging.Logger
	autoSize bool
}

// NewWriter returns a Writer. With autoSize set, column widths follow the
// longest header or cell in each column.
func NewWriter(logger logging.Logger, autoSize bool) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{logger: logger, autoSize: autoSize}
}

// Write renders tables, in order, as sheets of a single workbook and streams
// it to w. A table without columns becomes a blank sheet; absent cells are
// left unwritten.
func (wr *Writer) Write(w io.Writer, tables []*table.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("workbook needs at least one table")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			wr.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name()); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", t.Name(), err)
			}
		} else if _, err := f.NewSheet(t.Name()); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", t.Name(), err)
		}

		if err := wr.writeSheet(f, t, headerStyle); err != nil {
			return err
		}
		wr.logger.Debug("Sheet written",
			logging.F(logging.FieldSheet, t.Name()),
			logging.F(logging.FieldColumns, t.NumColumns()),
			logging.F(logging.FieldRows, t.NumRows()))
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (wr *Writer) writeSheet(f *excelize.File, t *table.Table, headerStyle int) error {
	sheet := t.Name()
	columns := t.Columns()
	if len(columns) == 0 {
		return nil
	}

	widths := make([]int, len(columns))
	for j, col := range columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header %q on %s: %w", col, sheet, err)
		}
		widths[j] = utf8.RuneCountInString(col)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header on %s: %w", sheet, err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header on %s: %w", sheet, err)
	}

	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s on %s: %w", cell, sheet, err)
			}
			if n := utf8.RuneCountInString(v); n > widths[j] {
				widths[j] = n
			}
		}
	}

	if !wr.autoSize {
		return nil
	}
	for j, w := range widths {
		name, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, clampWidth(w)); err != nil {
			return fmt.Errorf("failed to size column %s on %s: %w", name, sheet, err)
		}
	}
	return nil
}

func clampWidth(runes int) float64 {
	w := runes + 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > maxColumnWidth {
		w = maxColumnWidth
	}
	return float64(w)
}
