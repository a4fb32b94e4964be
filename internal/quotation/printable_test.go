package quotation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterflow/caterflow/report"
)

// stubGotenberg captures the HTML submitted for conversion and returns a
// canned PDF body.
func stubGotenberg(t *testing.T, captured *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		html, err := io.ReadAll(file)
		require.NoError(t, err)
		*captured = string(html)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 stub"))
	}))
}

func testPDFRenderer(t *testing.T, captured *string) *PDFRenderer {
	t.Helper()
	srv := stubGotenberg(t, captured)
	t.Cleanup(srv.Close)
	return NewPDFRenderer(testLogger(), report.NewClient(srv.URL), DefaultBranding()).
		WithClock(fixedClock)
}

func TestPDFRenderPricedLines(t *testing.T) {
	var captured string
	renderer := testPDFRenderer(t, &captured)

	menu := []MenuRow{{Item: "Chairs", Arabic: "كراسي", Unit: "pcs", Price: 10}}
	order := []OrderRow{{Item: "Chairs", Quantity: 100}}
	lines, err := PriceLines(menu, order)
	require.NoError(t, err)

	info := ClientInfo{
		ClientName:    "Al Rajhi Events",
		Contact:       "+966500000000",
		EventDate:     "15/06/2026",
		ReferenceCode: "Q-TESTREF",
	}

	pdf, ref, err := renderer.Render(context.Background(), lines, info, ComputeTotals(lines))
	require.NoError(t, err)
	assert.Equal(t, "Q-TESTREF", ref)
	assert.Equal(t, []byte("%PDF-1.4 stub"), pdf)

	assert.Contains(t, captured, "Al Rajhi Events")
	assert.Contains(t, captured, "Q-TESTREF")
	assert.Contains(t, captured, "كراسي")
	assert.Contains(t, captured, "<td>1,000.00</td>")
	assert.Contains(t, captured, "1,150.00")
	assert.Contains(t, captured, "<td>150.00</td>")
	assert.Contains(t, captured, "valid for 3 days")
	assert.Contains(t, captured, DefaultBranding().CompanyNameAr)
	assert.Contains(t, captured, DefaultBranding().BankIBAN)
	assert.Contains(t, captured, "15/06/2026")
}

func TestPDFRenderEmptyOrder(t *testing.T) {
	var captured string
	renderer := testPDFRenderer(t, &captured)

	info := ClientInfo{ReferenceCode: "Q-EMPTY", ValidityDays: "7"}
	pdf, ref, err := renderer.Render(context.Background(), nil, info, Totals{})
	require.NoError(t, err)
	assert.Equal(t, "Q-EMPTY", ref)
	assert.NotEmpty(t, pdf)

	assert.Contains(t, captured, "No items added to quotation")
	assert.Contains(t, captured, "valid for 7 days")
	assert.Contains(t, captured, "<td>0.00</td>")
}

func TestPDFRenderConversionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	renderer := NewPDFRenderer(testLogger(), report.NewClient(srv.URL), DefaultBranding()).
		WithClock(fixedClock)

	_, _, err := renderer.Render(context.Background(), nil, ClientInfo{ReferenceCode: "Q-FAIL"}, Totals{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert printable to pdf")
}
