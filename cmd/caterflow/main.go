package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/caterflow/caterflow/internal/app"
	"github.com/caterflow/caterflow/internal/auth"
	"github.com/caterflow/caterflow/internal/catalog"
	"github.com/caterflow/caterflow/internal/escalations"
	"github.com/caterflow/caterflow/internal/inventory"
	"github.com/caterflow/caterflow/internal/observability"
	"github.com/caterflow/caterflow/internal/platform/cache"
	"github.com/caterflow/caterflow/internal/platform/db"
	"github.com/caterflow/caterflow/internal/quotation"
	"github.com/caterflow/caterflow/internal/sales/customers"
	"github.com/caterflow/caterflow/internal/sales/orders"
	"github.com/caterflow/caterflow/internal/shared"
	"github.com/caterflow/caterflow/jobs"
	"github.com/caterflow/caterflow/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "caterflow_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	catalogItems, err := catalog.Load(logger)
	if err != nil {
		logger.Error("load catalog", slog.Any("error", err))
		os.Exit(1)
	}
	catalogService := catalog.NewService(catalogItems)
	catalogCache := catalog.NewCache(redisClient, cfg.CatalogCacheTTL)
	catalogHandler := catalog.NewHandler(logger, catalogService, catalogCache)

	metrics := observability.NewMetrics()

	branding := quotation.DefaultBranding()
	var logo []byte
	if cfg.QuotationLogoPath != "" {
		logo, err = os.ReadFile(cfg.QuotationLogoPath)
		if err != nil {
			logger.Warn("read quotation logo", slog.Any("error", err), slog.String("path", cfg.QuotationLogoPath))
			logo = nil
		}
	}
	renderer := quotation.NewRenderer(logger, branding, logo)
	pdfRenderer := quotation.NewPDFRenderer(logger, report.NewClient(cfg.GotenbergURL), branding)
	quotationHandler := quotation.NewHandler(logger, renderer, pdfRenderer, metrics)

	customersRepo := customers.NewRepository(dbpool)
	customersService := customers.NewService(customersRepo)
	customersHandler := customers.NewHandler(logger, customersService)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo)
	ordersHandler := orders.NewHandler(logger, ordersService, renderer, metrics)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	notifier := jobs.NewEscalationNotifier(jobClient, cfg.EscalationEmail)

	escalationsRepo := escalations.NewRepository(dbpool)
	escalationsService := escalations.NewService(logger, escalationsRepo, notifier)
	escalationsHandler := escalations.NewHandler(logger, escalationsService)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		CatalogHandler:     catalogHandler,
		QuotationHandler:   quotationHandler,
		CustomersHandler:   customersHandler,
		OrdersHandler:      ordersHandler,
		EscalationsHandler: escalationsHandler,
		InventoryHandler:   inventoryHandler,
		JobsHandler:        jobsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
