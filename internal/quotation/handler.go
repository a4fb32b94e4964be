package quotation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caterflow/caterflow/internal/observability"
	"github.com/caterflow/caterflow/internal/platform/httpx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves quotation generation. Unlike the CRUD APIs this endpoint
// keeps the flat {"error": ...} body shape its download clients already parse.
type Handler struct {
	logger   *slog.Logger
	renderer *Renderer
	pdf      *PDFRenderer
	metrics  *observability.Metrics
}

func NewHandler(logger *slog.Logger, renderer *Renderer, pdf *PDFRenderer, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, renderer: renderer, pdf: pdf, metrics: metrics}
}

// MountRoutes registers quotation endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/generate", h.generate)
	r.Post("/generate-pdf", h.generatePDF)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	req, lines, totals, ok := h.decodeAndPrice(w, r, "xlsx")
	if !ok {
		return
	}

	data, ref, err := h.renderer.Render(req.MenuData, lines, req.Client(), totals)
	if err != nil {
		h.logger.Error("render quotation workbook", slog.Any("error", err))
		h.metrics.CountQuotation("xlsx", "error")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.CountQuotation("xlsx", "ok")
	httpx.Attachment(w, ref+".xlsx", xlsxContentType, data)
}

func (h *Handler) generatePDF(w http.ResponseWriter, r *http.Request) {
	req, lines, totals, ok := h.decodeAndPrice(w, r, "pdf")
	if !ok {
		return
	}

	data, ref, err := h.pdf.Render(r.Context(), lines, req.Client(), totals)
	if err != nil {
		h.logger.Error("render quotation pdf", slog.Any("error", err))
		h.metrics.CountQuotation("pdf", "error")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.CountQuotation("pdf", "ok")
	httpx.Attachment(w, ref+".pdf", "application/pdf", data)
}

// decodeAndPrice performs the shared request validation and pricing. A nil
// menuData or orderData array is the client-error contract of this endpoint;
// an empty array still renders a workbook.
func (h *Handler) decodeAndPrice(w http.ResponseWriter, r *http.Request, format string) (GenerateRequest, []LineItem, Totals, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.CountQuotation(format, "rejected")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, nil, Totals{}, false
	}
	if req.MenuData == nil || req.OrderData == nil {
		h.metrics.CountQuotation(format, "rejected")
		writeError(w, http.StatusBadRequest, "Menu and order data required")
		return req, nil, Totals{}, false
	}

	lines, err := PriceLines(req.MenuData, req.OrderData)
	if err != nil {
		h.metrics.CountQuotation(format, "rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return req, nil, Totals{}, false
	}
	return req, lines, ComputeTotals(lines), true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
