package quotation

import (
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// sheetBuilder walks the quotation worksheet top to bottom with a row cursor.
// The first excelize error sticks; later calls become no-ops so section code
// stays free of per-call error plumbing.
type sheetBuilder struct {
	f      *excelize.File
	sheet  string
	styles *styleSet
	logger *slog.Logger
	merged map[string]struct{}
	row    int
	err    error
}

// Column widths for the eight-column layout: #, Product, Product (arb), Unit,
// Price per unit, QTY, #DAYS, Total Price.
var columnWidths = []float64{6, 30, 22, 10, 14, 8, 8, 14}

func (b *sheetBuilder) colWidths() {
	for col, width := range columnWidths {
		if b.err != nil {
			return
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			b.err = err
			return
		}
		b.err = b.f.SetColWidth(b.sheet, name, name, width)
	}
}

func (b *sheetBuilder) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && b.err == nil {
		b.err = err
	}
	return name
}

func (b *sheetBuilder) next() {
	b.row++
}

func (b *sheetBuilder) set(col, row int, value any) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetCellValue(b.sheet, b.cell(col, row), value)
}

func (b *sheetBuilder) style(name string, fromCol, fromRow, toCol, toRow int) {
	if b.err != nil {
		return
	}
	id, err := b.styles.id(name)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetCellStyle(b.sheet, b.cell(fromCol, fromRow), b.cell(toCol, toRow), id)
}

// styleRow applies a section style across the full content width of one row.
func (b *sheetBuilder) styleRow(name string, row int) {
	b.style(name, 1, row, lastCol, row)
}

func (b *sheetBuilder) height(row int, h float64) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetRowHeight(b.sheet, row, h)
}

// merge joins a rectangle of cells. An attempt overlapping an earlier merge is
// logged and skipped instead of corrupting the sheet.
func (b *sheetBuilder) merge(fromCol, fromRow, toCol, toRow int) {
	if b.err != nil {
		return
	}
	for col := fromCol; col <= toCol; col++ {
		for row := fromRow; row <= toRow; row++ {
			if _, taken := b.merged[b.cell(col, row)]; taken {
				b.logger.Warn("skipping duplicate cell merge",
					slog.String("from", b.cell(fromCol, fromRow)),
					slog.String("to", b.cell(toCol, toRow)))
				return
			}
		}
	}
	if err := b.f.MergeCell(b.sheet, b.cell(fromCol, fromRow), b.cell(toCol, toRow)); err != nil {
		b.err = err
		return
	}
	for col := fromCol; col <= toCol; col++ {
		for row := fromRow; row <= toRow; row++ {
			b.merged[b.cell(col, row)] = struct{}{}
		}
	}
}

// mergedRow writes one full-width merged row with the given style and height,
// then advances the cursor.
func (b *sheetBuilder) mergedRow(style string, value string, h float64) {
	row := b.row
	b.set(1, row, value)
	b.merge(1, row, lastCol, row)
	b.style(style, 1, row, lastCol, row)
	b.height(row, h)
	b.next()
}
