package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ad-rewards/internal/core/port"
)

// UserIDHeader carries the authenticated user id. Authentication happens
// upstream.
const UserIDHeader = "X-USER-ID"

// Options tune the HTTP surface.
type Options struct {
	// JoinRatePerSecond limits join attempts per user. Zero disables it.
	JoinRatePerSecond float64
	JoinBurst         int
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP over a port.CampaignUseCase.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	joinLimit := newUserRateLimiter(opts.JoinRatePerSecond, opts.JoinBurst)

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Post("/", h.handleCreateCampaign)
		r.Get("/", h.handleListJoinable)
		r.Get("/histories", h.handleJoinHistory)
		r.With(joinLimit.Middleware).Post("/{campaignID}/join", h.handleJoin)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
