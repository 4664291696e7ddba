package handlers

import (
	"context"
	"net/http"
	"time"

	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/pubsub"
	"sniperscope/internal/service"
	"sniperscope/pkg/httputil"
)

type Handler struct {
	Log     logger.Logger
	Sniper  *service.SniperService
	Breaker pubsub.Broadcaster // health probe target, may be Noop
}

func NewHandler(log logger.Logger, sniper *service.SniperService, bcast pubsub.Broadcaster) *Handler {
	if sniper == nil {
		panic("sniper service cannot be nil")
	}
	if bcast == nil {
		bcast = pubsub.Noop{}
	}

	return &Handler{Log: log, Sniper: sniper, Breaker: bcast}
}

func (a *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	if err := httputil.JSON(w, http.StatusOK, map[string]any{}, nil); err != nil {
		a.Log.Errorf("Healthz handler error: %s", err.Error())
	}
}

// Check health external services/clients
func (a *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := a.Breaker.Health(ctx); err != nil {
		err = httputil.Error(w, r, http.StatusServiceUnavailable, "dependencies_unhealthy", "dependencies check failed", map[string]any{
			"error": err.Error(),
		})
		if err != nil {
			a.Log.Errorf("Readiness handler error: %s", err.Error())
		}
		return
	}

	if err := httputil.JSON(w, http.StatusOK, map[string]string{"dependencies": "healthy"}, nil); err != nil {
		a.Log.Errorf("Readiness handler error: %s", err.Error())
	}
}
