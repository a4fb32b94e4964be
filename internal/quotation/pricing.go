package quotation

import "fmt"

// PriceLines resolves each order row against the menu snapshot and computes
// extended line totals. Lookup is by exact name; a miss produces a zero-priced
// line with blank metadata so a quotation can still be produced from a stale
// snapshot. Days defaults to 1 when absent; a quantity below 1 or an explicit
// negative day count is rejected rather than clamped.
func PriceLines(menu []MenuRow, order []OrderRow) ([]LineItem, error) {
	byName := make(map[string]MenuRow, len(menu))
	for _, row := range menu {
		if _, ok := byName[row.Item]; !ok {
			byName[row.Item] = row
		}
	}

	lines := make([]LineItem, 0, len(order))
	for i, row := range order {
		if row.Quantity < 1 {
			return nil, fmt.Errorf("order row %d (%q): quantity must be at least 1", i+1, row.Item)
		}
		days := row.Days
		if days == 0 {
			days = 1
		}
		if days < 1 {
			return nil, fmt.Errorf("order row %d (%q): days must be at least 1", i+1, row.Item)
		}

		line := LineItem{
			Name:     row.Item,
			Quantity: row.Quantity,
			Days:     days,
		}
		if entry, ok := byName[row.Item]; ok {
			line.NameAr = entry.Arabic
			line.Unit = entry.Unit
			line.UnitPrice = entry.Price
		}
		line.LineTotal = line.UnitPrice * float64(line.Quantity) * float64(line.Days)
		lines = append(lines, line)
	}
	return lines, nil
}

// ComputeTotals aggregates the financial summary. Intermediate values are kept
// unrounded; rounding error must not compound across lines.
func ComputeTotals(lines []LineItem) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal
	}
	vat := subtotal * VATRate
	return Totals{
		Subtotal:   subtotal,
		VAT:        vat,
		GrandTotal: subtotal + vat,
	}
}
