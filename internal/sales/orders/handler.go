package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caterflow/caterflow/internal/observability"
	"github.com/caterflow/caterflow/internal/platform/httpx"
	"github.com/caterflow/caterflow/internal/quotation"
	"github.com/caterflow/caterflow/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	renderer *quotation.Renderer
	metrics  *observability.Metrics
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, renderer *quotation.Renderer, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		renderer: renderer,
		metrics:  metrics,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListOrdersRequest{Limit: 50}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if c := r.URL.Query().Get("customer_id"); c != "" {
		if id, err := strconv.ParseInt(c, 10, 64); err == nil {
			req.CustomerID = &id
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	items, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":     items,
		"pagination": shared.NewPagination(req.Limit, req.Offset, total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("update order status", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete order", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quotation renders the stored order's items and prices through the quotation
// pipeline, so a booked event can be re-issued as a download without the
// client resending menu data.
func (h *Handler) Quotation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	menu := make([]quotation.MenuRow, 0, len(order.Items))
	lines := make([]quotation.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		menu = append(menu, quotation.MenuRow{
			Item:     item.Name,
			Unit:     "pcs",
			Price:    item.Price,
			Category: item.Category,
		})
		lines = append(lines, quotation.LineItem{
			Name:      item.Name,
			Unit:      "pcs",
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Days:      1,
			LineTotal: item.Price * float64(item.Quantity),
		})
	}

	info := quotation.ClientInfo{
		EventType:      order.Event,
		EventDate:      order.EventDate.Format("2006-01-02"),
		PickupTime:     order.EventTime,
		NumberOfPeople: strconv.Itoa(order.Guests),
	}
	if order.Customer != nil {
		info.ClientName = order.Customer.Name
		if order.Customer.Phone != nil {
			info.Contact = *order.Customer.Phone
		}
	}

	data, ref, err := h.renderer.Render(menu, lines, info, quotation.ComputeTotals(lines))
	if err != nil {
		h.logger.Error("render order quotation", slog.Any("error", err), slog.Int64("id", id))
		h.metrics.CountQuotation("xlsx", "error")
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountQuotation("xlsx", "ok")
	httpx.Attachment(w, ref+".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "order id must be numeric")
		return 0, false
	}
	return id, true
}
