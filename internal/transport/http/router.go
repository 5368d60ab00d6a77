// Package httptransport is the thin HTTP layer. It delegates to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"comparo/internal/attribution"
	"comparo/internal/auth"
	"comparo/internal/catalog"
	"comparo/internal/gate"
	"comparo/internal/platform/metrics"
	"comparo/internal/platform/middleware"
	"comparo/internal/redirect"
)

// Handler bundles the dependencies every route group draws from.
type Handler struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	authSvc    *auth.Service
	resolver   *redirect.Resolver
	tracker    *attribution.Tracker
	products   catalog.Store
	durableTTL time.Duration
}

func NewHandler(
	logger *slog.Logger,
	m *metrics.Metrics,
	authSvc *auth.Service,
	resolver *redirect.Resolver,
	tracker *attribution.Tracker,
	products catalog.Store,
	durableTTL time.Duration,
) *Handler {
	return &Handler{
		logger:     logger,
		metrics:    m,
		authSvc:    authSvc,
		resolver:   resolver,
		tracker:    tracker,
		products:   products,
		durableTTL: durableTTL,
	}
}

// NewRouter wires the middleware chain and all route groups. The gate runs
// after metadata extraction so its log lines carry request IDs, and before
// every route handler so no path escapes classification.
func NewRouter(h *Handler, g *gate.Gate) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(g.Middleware)

	// Public surface.
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/unauthorized", h.handleUnauthorized)
	r.Get("/products/{slug}", h.handleProductDetail)
	r.Get("/p/{slug}", h.handleProductVisit)

	// Protected surface (the gate enforces the credential).
	r.Get("/account", h.handleAccount)

	// Admin back office (the gate enforces the admin role).
	r.Get("/admin/dashboard", h.handleAdminDashboard)
	r.Get("/admin/attribution/events", h.handleListAttributionEvents)
	r.Delete("/admin/attribution/events", h.handleResetAttributionEvents)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
