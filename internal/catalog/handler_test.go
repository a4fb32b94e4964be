package catalog

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedHandler(t *testing.T, ttl time.Duration) (*Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, NewService(testItems()), NewCache(client, ttl)), mr
}

func TestListPopulatesCache(t *testing.T) {
	handler, mr := newCachedHandler(t, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/?source=Events+Warehouse", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	key := Key("items", "Events Warehouse", "")
	require.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestListServesFromCache(t *testing.T) {
	handler, mr := newCachedHandler(t, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Overwrite the cached payload; a second request must serve it verbatim.
	canned := listResponse{Items: []Item{{Name: "Cached Only", Price: 1}}, Total: 1}
	raw, err := json.Marshal(canned)
	require.NoError(t, err)
	require.NoError(t, mr.Set(Key("items", "", ""), string(raw)))

	rec = httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Cached Only", resp.Items[0].Name)
}

func TestCacheExpiryFallsThrough(t *testing.T) {
	handler, mr := newCachedHandler(t, time.Minute)

	rec := httptest.NewRecorder()
	handler.Sources(rec, httptest.NewRequest(http.MethodGet, "/sources", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, mr.Exists(Key("sources")))

	mr.FastForward(2 * time.Minute)
	require.False(t, mr.Exists(Key("sources")))

	rec = httptest.NewRecorder()
	handler.Sources(rec, httptest.NewRequest(http.MethodGet, "/sources", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sourcesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Events Warehouse", "ISFC Central Kitchen", "Other Supplier"}, resp.Sources)
}

func TestNilCachePassthrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(testItems()), nil)

	rec := httptest.NewRecorder()
	handler.Categories(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"BREAKFAST BUFFET", "EQUIPMENT"}, resp.Categories)
}
