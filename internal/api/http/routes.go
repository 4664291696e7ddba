package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sniperscope/internal/api/http/handlers"
	"sniperscope/internal/api/http/mw"
	"sniperscope/internal/metrics"
)

func BuildRouter(
	api *handlers.Handler,
	logMW *mw.LoggingMiddleware,
	gzipMW *mw.GzipMiddleware,
	rateLimitMW *mw.RateLimitMiddleware,
	corsMW *mw.CORSMiddleware,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if logMW != nil {
		r.Use(logMW.Handler)
	}
	if gzipMW != nil {
		r.Use(gzipMW.Handler)
	}
	if corsMW != nil {
		r.Use(corsMW.Handler())
	}

	// tech endpoint not limited
	r.Get("/healthz", api.Healthz)
	r.Get("/readiness", api.Readiness)
	r.Mount("/metrics", metrics.Handler())

	r.Route("/api", func(apiR chi.Router) {
		if rateLimitMW != nil {
			apiR.Use(rateLimitMW.Handler)
		}

		apiR.Get("/opportunities", api.Opportunities)

		apiR.Route("/logs", func(lr chi.Router) {
			lr.Get("/", api.Logs)
			lr.Delete("/", api.ClearLogs)
		})

		apiR.Route("/snipe", func(sr chi.Router) {
			sr.Post("/{address}", api.Snipe)
			sr.Get("/history", api.History)
		})

		apiR.Get("/network", api.Network)

		apiR.Route("/engine", func(er chi.Router) {
			er.Get("/config", api.EngineConfig)
			er.Put("/config", api.UpdateEngineConfig)
		})

		apiR.Post("/quote", api.Quote)
	})

	return r
}
