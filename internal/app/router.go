package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caterflow/caterflow/internal/auth"
	"github.com/caterflow/caterflow/internal/catalog"
	"github.com/caterflow/caterflow/internal/escalations"
	"github.com/caterflow/caterflow/internal/inventory"
	"github.com/caterflow/caterflow/internal/observability"
	"github.com/caterflow/caterflow/internal/quotation"
	"github.com/caterflow/caterflow/internal/sales/customers"
	"github.com/caterflow/caterflow/internal/sales/orders"
	"github.com/caterflow/caterflow/internal/shared"
	"github.com/caterflow/caterflow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthHandler        *auth.Handler
	CatalogHandler     *catalog.Handler
	QuotationHandler   *quotation.Handler
	CustomersHandler   *customers.Handler
	OrdersHandler      *orders.Handler
	EscalationsHandler *escalations.Handler
	InventoryHandler   *inventory.Handler
	JobsHandler        *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with CaterFlow defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireSession(params.Logger))
		r.Route("/catalog", params.CatalogHandler.MountRoutes)
		r.Route("/quotations", params.QuotationHandler.MountRoutes)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		r.Route("/orders", params.OrdersHandler.MountRoutes)
		r.Route("/escalations", params.EscalationsHandler.MountRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
