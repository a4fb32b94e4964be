package quotation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/caterflow/caterflow/internal/observability"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(testLogger(), testRenderer(), nil, observability.NewMetrics())
	r := chi.NewRouter()
	r.Route("/api/quotations", h.MountRoutes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload["error"]
}

func TestGenerateRejectsMissingArrays(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"no menu", `{"orderData":[],"clientInfo":{}}`},
		{"no order", `{"menuData":[],"clientInfo":{}}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/quotations/generate", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Menu and order data required", decodeError(t, resp))
		})
	}
}

func TestGenerateReturnsWorkbookAttachment(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"menuData":[{"Item":"Chairs","Arabic":"كراسي","Unit":"pcs","Price":10}],
		"orderData":[{"Item":"Chairs","Quantity":100}],
		"clientInfo":{"clientName":"Al Rajhi Events"}
	}`
	resp := postJSON(t, srv.URL+"/api/quotations/generate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Q-TESTREF.xlsx")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	total, err := f.GetCellValue(sheetQuotation, "H15")
	require.NoError(t, err)
	assert.Equal(t, "1,000.00", total)
}

func TestGenerateAcceptsEmptyArrays(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/quotations/generate", `{"menuData":[],"orderData":[],"clientInfo":{}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
}

func TestGenerateRejectsZeroQuantity(t *testing.T) {
	srv := newTestServer(t)

	body := `{"menuData":[{"Item":"Chairs","Price":10}],"orderData":[{"Item":"Chairs","Quantity":0}],"clientInfo":{}}`
	resp := postJSON(t, srv.URL+"/api/quotations/generate", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp), "quantity")
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/quotations/generate", `{"menuData":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
