package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{Name: "Arabic Breakfast Buffet", Unit: "person", Price: 65, Source: "ISFC Central Kitchen", Category: "BREAKFAST BUFFET"},
		{Name: "Chairs", Unit: "pcs", Price: 10, Source: "Events Warehouse", Category: "EQUIPMENT"},
		{Name: "Round Tables", Unit: "pcs", Price: 45, Source: "Events Warehouse", Category: "EQUIPMENT"},
		{Name: "Chairs", Unit: "pcs", Price: 99, Source: "Other Supplier", Category: "EQUIPMENT"},
	}
}

func TestItemsFiltering(t *testing.T) {
	svc := NewService(testItems())

	assert.Len(t, svc.Items("", ""), 4)
	assert.Len(t, svc.Items("Events Warehouse", ""), 2)
	assert.Len(t, svc.Items("Events Warehouse", "EQUIPMENT"), 2)
	assert.Len(t, svc.Items("Events Warehouse", "BREAKFAST BUFFET"), 0)

	only := svc.Items("ISFC Central Kitchen", "BREAKFAST BUFFET")
	require.Len(t, only, 1)
	assert.Equal(t, "Arabic Breakfast Buffet", only[0].Name)
}

func TestSourcesAndCategoriesSorted(t *testing.T) {
	svc := NewService(testItems())

	assert.Equal(t, []string{"Events Warehouse", "ISFC Central Kitchen", "Other Supplier"}, svc.Sources())
	assert.Equal(t, []string{"BREAKFAST BUFFET", "EQUIPMENT"}, svc.Categories(""))
	assert.Equal(t, []string{"EQUIPMENT"}, svc.Categories("Events Warehouse"))
}

func TestLookupFirstOccurrenceWins(t *testing.T) {
	svc := NewService(testItems())

	item, ok := svc.Lookup("Chairs")
	require.True(t, ok)
	assert.Equal(t, 10.0, item.Price)
	assert.Equal(t, "Events Warehouse", item.Source)

	_, ok = svc.Lookup("Napkins")
	assert.False(t, ok)
}

func TestLoadBundledMenu(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	items, err := Load(logger)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	for _, item := range items {
		assert.NotEmpty(t, item.Name)
		assert.GreaterOrEqual(t, item.Price, 0.0)
		assert.NotEmpty(t, item.Category)
	}
}
