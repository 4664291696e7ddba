package http

import (
	"context"
	"net/http"

	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/api/http/handlers"
	"sniperscope/internal/api/http/mw"
	"sniperscope/internal/config"
	"sniperscope/internal/pubsub"
	"sniperscope/internal/service"
	rds "sniperscope/internal/stores/redis"
)

type ServerDeps struct {
	Logger    logger.Logger
	Cfg       *config.Config
	Sniper    *service.SniperService
	RdbClient *rds.Client       // optional, only for rate-limit
	Bcast     pubsub.Broadcaster // optional, probed by /readiness
}

type Server struct {
	log logger.Logger
	cfg *config.Config
	srv *http.Server
}

func NewServer(deps *ServerDeps) *Server {
	api := handlers.NewHandler(deps.Logger, deps.Sniper, deps.Bcast)

	logMW := mw.NewLogging(deps.Logger)
	gzipMW := mw.NewGzip(0, deps.Logger)

	var corsMW *mw.CORSMiddleware
	if deps.Cfg.API.HTTP.CORS.Enabled {
		corsMW = mw.NewCORS(&deps.Cfg.API.HTTP.CORS)
	}

	var rateLimitMW *mw.RateLimitMiddleware
	if deps.Cfg.RateLimit.Enabled && deps.RdbClient != nil {
		rateLimitMW = mw.NewRateLimit(deps.RdbClient.Client, mw.RateBucket{
			RefillPerSec: deps.Cfg.RateLimit.ByIP.RefillPerSec,
			Burst:        deps.Cfg.RateLimit.ByIP.Burst,
		})
	}

	router := BuildRouter(api, logMW, gzipMW, rateLimitMW, corsMW)

	httpCfg := deps.Cfg.API.HTTP
	return &Server{
		log: deps.Logger,
		cfg: deps.Cfg,
		srv: &http.Server{
			Addr:         httpCfg.Addr,
			Handler:      router,
			ReadTimeout:  httpCfg.ReadTimeout,
			WriteTimeout: httpCfg.WriteTimeout,
			IdleTimeout:  httpCfg.IdleTimeout,
		},
	}
}

func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("HTTP server shutting down")
	return s.srv.Shutdown(ctx)
}
