package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

type Handlers struct {
	EMI  *EMIHandler
	Lead *LeadHandler
	Site *SiteHandler
}

// NewRouter wires every route. Lead submissions share one rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", h.Site.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate-emi", h.EMI.Calculate)
		r.Get("/emi", h.EMI.View)
		r.Get("/emi/chart.svg", h.EMI.ChartSVG)
		r.Post("/emi/tenures", h.EMI.Tenures)
		r.With(RateLimit(limiter)).Post("/submit", h.Lead.SubmitJSON)
	})

	r.With(RateLimit(limiter)).Post("/submit", h.Lead.SubmitForm)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/leads", h.Lead.List)
		r.Get("/calculations", h.EMI.History)
	})

	r.Get("/*", h.Site.Static)
	r.NotFound(h.Site.Static)

	return r
}
