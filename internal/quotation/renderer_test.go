package quotation

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
}

func testRenderer() *Renderer {
	return NewRenderer(testLogger(), DefaultBranding(), nil).
		WithClock(fixedClock).
		WithRefCodes(func() string { return "Q-TESTREF" })
}

func TestRenderWorkbookLayout(t *testing.T) {
	menu := []MenuRow{{Item: "Chairs", Arabic: "كراسي", Unit: "pcs", Price: 10, Source: "Event Logistics", Category: "EQUIPMENT & SERVICE"}}
	lines, err := PriceLines(menu, []OrderRow{{Item: "Chairs", Quantity: 100}})
	require.NoError(t, err)
	totals := ComputeTotals(lines)

	info := ClientInfo{ClientName: "Al Rajhi Events", Location: "Riyadh"}
	data, ref, err := testRenderer().Render(menu, lines, info, totals)
	require.NoError(t, err)
	assert.Equal(t, "Q-TESTREF", ref)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetQuotation, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, DefaultBranding().CompanyNameAr, get("A4"))
	assert.Equal(t, "Quotation - عرض سعر", get("A5"))
	assert.Equal(t, "Al Rajhi Events", get("B8"))
	assert.Equal(t, "15/06/2026", get("F8"))
	assert.Equal(t, "Q-TESTREF", get("F12"))

	assert.Equal(t, "#", get("A14"))
	assert.Equal(t, "Product", get("B14"))
	assert.Equal(t, "Total Price", get("H14"))

	assert.Equal(t, "Chairs", get("B15"))
	assert.Equal(t, "كراسي", get("C15"))
	assert.Equal(t, "pcs", get("D15"))
	assert.Equal(t, "100", get("F15"))
	assert.Equal(t, "1", get("G15"))
	assert.Equal(t, "1,000.00", get("H15"))

	// Buffet details block follows the table when localized names exist.
	assert.Equal(t, "Buffets - Banquet Details - التفاصيل", get("A17"))
	assert.Equal(t, "Chairs", get("A18"))

	// Summary block with whole-unit display formatting plus the static panel.
	assert.Equal(t, "Invoice Details", get("A20"))
	assert.Equal(t, "1,000", get("E21"))
	assert.Equal(t, "150", get("E22"))
	assert.Equal(t, "1,150", get("E23"))
	assert.Equal(t, "Paid Amount", get("A24"))
	assert.Equal(t, "", get("E24"))
	assert.Equal(t, "Open", get("G21"))

	// Reference sheet carries the menu snapshot.
	ref1, err := f.GetCellValue(sheetMenuRef, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Item", ref1)
	ref2, err := f.GetCellValue(sheetMenuRef, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Chairs", ref2)
}

func TestRenderDeterministicUnderFixedClock(t *testing.T) {
	menu := []MenuRow{{Item: "Chairs", Arabic: "كراسي", Unit: "pcs", Price: 10}}
	lines, err := PriceLines(menu, []OrderRow{{Item: "Chairs", Quantity: 3, Days: 2}})
	require.NoError(t, err)
	totals := ComputeTotals(lines)
	info := ClientInfo{ClientName: "Diwan Catering"}

	first, _, err := testRenderer().Render(menu, lines, info, totals)
	require.NoError(t, err)
	second, _, err := testRenderer().Render(menu, lines, info, totals)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical inputs and clock must produce identical bytes")
}

func TestRenderEmptyOrderProducesPlaceholder(t *testing.T) {
	data, _, err := testRenderer().Render([]MenuRow{}, nil, ClientInfo{}, Totals{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	placeholder, err := f.GetCellValue(sheetQuotation, "A15")
	require.NoError(t, err)
	assert.Equal(t, "No items added to quotation", placeholder)

	status, err := f.GetCellValue(sheetQuotation, "G18")
	require.NoError(t, err)
	assert.Equal(t, "Open", status)
}

func TestRenderUsesSuppliedReferenceCode(t *testing.T) {
	info := ClientInfo{ReferenceCode: "Q-2026-077"}
	_, ref, err := testRenderer().Render([]MenuRow{}, nil, info, Totals{})
	require.NoError(t, err)
	assert.Equal(t, "Q-2026-077", ref)
}

func TestMergeGuardSkipsOverlappingRanges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	b := &sheetBuilder{
		f:      f,
		sheet:  "Sheet1",
		styles: newStyleSet(f),
		logger: testLogger(),
		merged: make(map[string]struct{}),
		row:    1,
	}

	b.merge(1, 1, 4, 1)
	b.merge(2, 1, 3, 2)
	require.NoError(t, b.err)

	merges, err := f.GetMergeCells("Sheet1")
	require.NoError(t, err)
	assert.Len(t, merges, 1, "overlapping merge is skipped, not layered")
}
