package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLinesResolvesCatalogEntries(t *testing.T) {
	menu := []MenuRow{{Item: "Chairs", Arabic: "كراسي", Unit: "pcs", Price: 10}}
	order := []OrderRow{{Item: "Chairs", Quantity: 100}}

	lines, err := PriceLines(menu, order)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Chairs", lines[0].Name)
	assert.Equal(t, "كراسي", lines[0].NameAr)
	assert.Equal(t, "pcs", lines[0].Unit)
	assert.Equal(t, 10.0, lines[0].UnitPrice)
	assert.Equal(t, 100, lines[0].Quantity)
	assert.Equal(t, 1, lines[0].Days)
	assert.Equal(t, 1000.0, lines[0].LineTotal)

	totals := ComputeTotals(lines)
	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 150.0, totals.VAT)
	assert.Equal(t, 1150.0, totals.GrandTotal)
}

func TestPriceLinesUnknownItemResolvesToZero(t *testing.T) {
	lines, err := PriceLines([]MenuRow{}, []OrderRow{{Item: "Unknown Thing", Quantity: 5}})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Unknown Thing", lines[0].Name)
	assert.Empty(t, lines[0].NameAr)
	assert.Empty(t, lines[0].Unit)
	assert.Zero(t, lines[0].UnitPrice)
	assert.Zero(t, lines[0].LineTotal)

	totals := ComputeTotals(lines)
	assert.Zero(t, totals.GrandTotal)
}

func TestPriceLinesDaysMultiplier(t *testing.T) {
	menu := []MenuRow{{Item: "Round Tables", Unit: "pcs", Price: 50}}
	order := []OrderRow{
		{Item: "Round Tables", Quantity: 10, Days: 1},
		{Item: "Round Tables", Quantity: 10, Days: 3},
	}

	lines, err := PriceLines(menu, order)
	require.NoError(t, err)
	require.Len(t, lines, 2, "same item at different day counts stays two rows")

	assert.Equal(t, 500.0, lines[0].LineTotal)
	assert.Equal(t, 1500.0, lines[1].LineTotal)
}

func TestPriceLinesRejectsBadQuantities(t *testing.T) {
	menu := []MenuRow{{Item: "Chairs", Price: 10}}

	_, err := PriceLines(menu, []OrderRow{{Item: "Chairs", Quantity: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")

	_, err = PriceLines(menu, []OrderRow{{Item: "Chairs", Quantity: 5, Days: -2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days")
}

func TestPriceLinesEmptyOrder(t *testing.T) {
	lines, err := PriceLines([]MenuRow{{Item: "Chairs", Price: 10}}, []OrderRow{})
	require.NoError(t, err)
	assert.Empty(t, lines)

	totals := ComputeTotals(lines)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.VAT)
	assert.Zero(t, totals.GrandTotal)
}

func TestComputeTotalsNoIntermediateRounding(t *testing.T) {
	lines := []LineItem{
		{LineTotal: 33.335},
		{LineTotal: 66.665},
	}
	totals := ComputeTotals(lines)
	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, totals.Subtotal*0.15, totals.VAT)
	assert.Equal(t, totals.Subtotal+totals.VAT, totals.GrandTotal)
}

func TestGenerateRequestClientNormalisation(t *testing.T) {
	req := GenerateRequest{ClientInfo: clientInfoPayload{
		ClientName:     "Al Rajhi Events",
		ClientContact:  "0501234567",
		EventTime:      "18:00",
		SerialNumber:   "Q-2026-014",
		NumberOfPeople: []byte(`250`),
		ValidityDays:   []byte(`"7"`),
	}}

	info := req.Client()
	assert.Equal(t, "0501234567", info.Contact)
	assert.Equal(t, "18:00", info.PickupTime, "eventTime doubles as pickup time when pickupTime is absent")
	assert.Equal(t, "Q-2026-014", info.ReferenceCode)
	assert.Equal(t, "250", info.NumberOfPeople, "numeric guest counts render as text")
	assert.Equal(t, "7", info.ValidityDays)
}
