package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sniperscope/internal/domain"
	"sniperscope/pkg/httputil"
)

const (
	defaultLogLimit     = 100
	defaultHistoryLimit = 50
)

func (a *Handler) Opportunities(w http.ResponseWriter, r *http.Request) {
	opps := a.Sniper.Opportunities(r.Context())

	if err := httputil.JSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
	}, nil); err != nil {
		a.Log.Errorf("Opportunities handler error: %s", err.Error())
	}
}

func (a *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultLogLimit)

	logs := a.Sniper.RecentLogs(r.Context(), limit)
	if err := httputil.JSON(w, http.StatusOK, map[string]any{
		"logs":  logs,
		"count": len(logs),
	}, nil); err != nil {
		a.Log.Errorf("Logs handler error: %s", err.Error())
	}
}

func (a *Handler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	cleared := a.Sniper.ClearLogs(r.Context())

	if err := httputil.JSON(w, http.StatusOK, map[string]any{"cleared": cleared}, nil); err != nil {
		a.Log.Errorf("ClearLogs handler error: %s", err.Error())
	}
}

func (a *Handler) Snipe(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if address == "" {
		if err := httputil.Error(w, r, http.StatusBadRequest, "missing_address", "token address is required", nil); err != nil {
			a.Log.Errorf("Snipe handler error: %s", err.Error())
		}
		return
	}

	res := a.Sniper.Snipe(r.Context(), address)
	if err := httputil.JSON(w, http.StatusOK, res, nil); err != nil {
		a.Log.Errorf("Snipe handler error: %s", err.Error())
	}
}

func (a *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultHistoryLimit)

	history := a.Sniper.History(r.Context(), limit)
	if err := httputil.JSON(w, http.StatusOK, map[string]any{
		"history": history,
		"count":   len(history),
	}, nil); err != nil {
		a.Log.Errorf("History handler error: %s", err.Error())
	}
}

func (a *Handler) Network(w http.ResponseWriter, r *http.Request) {
	if err := httputil.JSON(w, http.StatusOK, a.Sniper.Network(r.Context()), nil); err != nil {
		a.Log.Errorf("Network handler error: %s", err.Error())
	}
}

func (a *Handler) EngineConfig(w http.ResponseWriter, r *http.Request) {
	if err := httputil.JSON(w, http.StatusOK, a.Sniper.Engine(r.Context()), nil); err != nil {
		a.Log.Errorf("EngineConfig handler error: %s", err.Error())
	}
}

func (a *Handler) UpdateEngineConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.EngineConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		if err = httputil.Error(w, r, http.StatusBadRequest, "invalid_body", "cannot decode engine config", nil); err != nil {
			a.Log.Errorf("UpdateEngineConfig handler error: %s", err.Error())
		}
		return
	}

	if err := a.Sniper.UpdateEngine(r.Context(), cfg); err != nil {
		if err = httputil.Error(w, r, http.StatusBadRequest, "invalid_config", err.Error(), nil); err != nil {
			a.Log.Errorf("UpdateEngineConfig handler error: %s", err.Error())
		}
		return
	}

	if err := httputil.JSON(w, http.StatusOK, a.Sniper.Engine(r.Context()), nil); err != nil {
		a.Log.Errorf("UpdateEngineConfig handler error: %s", err.Error())
	}
}

func (a *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err = httputil.Error(w, r, http.StatusBadRequest, "invalid_body", "cannot decode quote request", nil); err != nil {
			a.Log.Errorf("Quote handler error: %s", err.Error())
		}
		return
	}

	if req.OutputMint == "" || req.AmountLamports == 0 {
		if err := httputil.Error(w, r, http.StatusBadRequest, "invalid_request", "output_mint and amount_lamports are required", nil); err != nil {
			a.Log.Errorf("Quote handler error: %s", err.Error())
		}
		return
	}

	quote := a.Sniper.Quote(r.Context(), req)
	if err := httputil.JSON(w, http.StatusOK, quote, nil); err != nil {
		a.Log.Errorf("Quote handler error: %s", err.Error())
	}
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
