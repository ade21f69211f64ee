package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brunosoares877/Crefaz/internal/clients"
	apierrors "github.com/brunosoares877/Crefaz/internal/http/errors"
	"github.com/brunosoares877/Crefaz/internal/http/handlers"
	"github.com/brunosoares877/Crefaz/internal/http/middleware"
	"github.com/brunosoares877/Crefaz/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	Metrics        *metrics.Metrics
	WhatsappNumber string
	AdminToken     string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(cl *clients.Clients, opts Options) http.Handler {
	root := chi.NewRouter()

	var (
		httpObs middleware.HTTPObserver
		leadObs handlers.LeadObserver
	)
	if opts.Metrics != nil {
		httpObs, leadObs = opts.Metrics, opts.Metrics
	}

	// Middleware (внешний -> внутренний). RequestID до Logging, чтобы id попал в логгер.
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.Metrics(httpObs),
		middleware.CORS(),
		middleware.Timeout(opts.Timeout),
	)

	h := handlers.New(cl, opts.WhatsappNumber, leadObs)
	registerRoutes(root, h, opts.AdminToken)

	root.NotFound(apierrors.NotFound)
	root.MethodNotAllowed(apierrors.NotFound)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, adminToken string) {
	r.Get("/health", h.Health)

	// захват лидов
	r.Route("/api/leads", func(r chi.Router) {
		r.Post("/", h.CreateLead)
		r.Get("/", h.ListLeads)
		r.Get("/export", h.ExportLeads)
		r.Get("/{id}/whatsapp", h.LeadWhatsApp)
		r.Patch("/{id}/status", h.UpdateLeadStatus)
		r.Delete("/{id}", h.DeleteLead)
	})

	// партнёрский API
	r.Route("/api/partner", func(r chi.Router) {
		r.Get("/health", h.PartnerHealth)
		r.Get("/token", h.PartnerToken)
		r.Get("/environment", h.PartnerEnvironment)
		r.With(middleware.AdminBearer(adminToken)).Post("/environment", h.SwitchPartnerEnvironment)
		r.Get("/products", h.PartnerProducts)
		r.Post("/simulate", h.PartnerSimulate)
	})
}
