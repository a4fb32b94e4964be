package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

// Handler exposes the catalog as a read-only JSON API. Responses are served
// through the Redis cache when one is configured.
type Handler struct {
	logger  *slog.Logger
	service *Service
	cache   *Cache
}

// NewHandler constructs a catalog Handler. A nil cache disables caching.
func NewHandler(logger *slog.Logger, service *Service, cache *Cache) *Handler {
	return &Handler{logger: logger, service: service, cache: cache}
}

// MountRoutes registers catalog routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/sources", h.Sources)
	r.Get("/categories", h.Categories)
}

type listResponse struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

type sourcesResponse struct {
	Sources []string `json:"sources"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// List returns catalog items, filtered by optional source/category query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	category := r.URL.Query().Get("category")

	var resp listResponse
	err := h.cache.FetchJSON(r.Context(), Key("items", source, category), &resp, func() (interface{}, error) {
		items := h.service.Items(source, category)
		return listResponse{Items: items, Total: len(items)}, nil
	})
	if err != nil {
		h.logger.Error("list catalog", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Sources returns the distinct brand sources.
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	var resp sourcesResponse
	err := h.cache.FetchJSON(r.Context(), Key("sources"), &resp, func() (interface{}, error) {
		return sourcesResponse{Sources: h.service.Sources()}, nil
	})
	if err != nil {
		h.logger.Error("list catalog sources", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Categories returns categories, optionally scoped by ?source=.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	var resp categoriesResponse
	err := h.cache.FetchJSON(r.Context(), Key("categories", source), &resp, func() (interface{}, error) {
		return categoriesResponse{Categories: h.service.Categories(source)}, nil
	})
	if err != nil {
		h.logger.Error("list catalog categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}
