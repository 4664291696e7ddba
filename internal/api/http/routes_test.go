package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerCfg "gitlab.com/nevasik7/alerting/config"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/api/http/handlers"
	"sniperscope/internal/domain"
	"sniperscope/internal/service"
	"sniperscope/internal/state"
)

// --- helpers ---

func newTestLogger() logger.Logger {
	return logger.New(loggerCfg.LoggerCfg{
		Level:  "error",
		Format: "json",
	})
}

type env struct {
	srv   *httptest.Server
	store *state.OpportunityStore
	sink  *state.LogSink
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	store := state.NewOpportunityStore(50)
	sink := state.NewLogSink(500)
	history := state.NewActionHistory(100)
	network := state.NewNetworkStatsStore(time.Now())
	engine := state.NewEngineStore()

	lg := newTestLogger()
	svc := service.NewSniperService(lg, store, sink, history, network, engine, nil)
	api := handlers.NewHandler(lg, svc, nil)

	router := BuildRouter(api, nil, nil, nil, nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{srv: srv, store: store, sink: sink}
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "ok", envelope.Status)
	return envelope.Data
}

// --- tests ---

func TestRoutes_Healthz(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	resp, err := http.Get(e.srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_Opportunities(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.store.Prepend([]domain.Opportunity{{
		ID:           "opp-1",
		TokenSymbol:  "PUMP",
		TokenAddress: "tok1",
		Status:       domain.StatusDetected,
	}})

	resp, err := http.Get(e.srv.URL + "/api/opportunities")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, float64(1), data["count"])
	opps := data["opportunities"].([]any)
	require.Len(t, opps, 1)
	assert.Equal(t, "PUMP", opps[0].(map[string]any)["token_symbol"])
}

func TestRoutes_LogsLifecycle(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.sink.Append(domain.LevelInfo, "line one")
	e.sink.Append(domain.LevelSuccess, "line two")

	resp, err := http.Get(e.srv.URL + "/api/logs?limit=1")
	require.NoError(t, err)
	data := decodeData(t, resp)
	require.Equal(t, float64(1), data["count"])
	logs := data["logs"].([]any)
	assert.Equal(t, "line two", logs[0].(map[string]any)["message"])

	req, _ := http.NewRequest(http.MethodDelete, e.srv.URL+"/api/logs", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	data = decodeData(t, resp)
	assert.Equal(t, float64(2), data["cleared"])
	assert.Zero(t, e.sink.Len())
}

func TestRoutes_SnipeAndHistory(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.store.Prepend([]domain.Opportunity{{
		ID:           "opp-1",
		TokenSymbol:  "PUMP",
		TokenAddress: "tok1",
		Status:       domain.StatusDetected,
	}})

	resp, err := http.Post(e.srv.URL+"/api/snipe/tok1", "application/json", nil)
	require.NoError(t, err)
	data := decodeData(t, resp)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, true, data["simulation"])
	assert.NotEmpty(t, data["signature"])

	got, ok := e.store.FindByToken("tok1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusSniped, got.Status)

	resp, err = http.Get(e.srv.URL + "/api/snipe/history")
	require.NoError(t, err)
	data = decodeData(t, resp)
	assert.Equal(t, float64(1), data["count"])
}

func TestRoutes_Network(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	resp, err := http.Get(e.srv.URL + "/api/network")
	require.NoError(t, err)
	data := decodeData(t, resp)
	assert.Equal(t, float64(3200), data["tps"])
	assert.Equal(t, "medium", data["congestion_level"])
}

func TestRoutes_EngineConfigRoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	resp, err := http.Get(e.srv.URL + "/api/engine/config")
	require.NoError(t, err)
	data := decodeData(t, resp)
	assert.Equal(t, "dynamic", data["tip_strategy"])

	cfg := domain.DefaultEngineConfig()
	cfg.TipStrategy = "aggressive"
	body, _ := json.Marshal(cfg)

	req, _ := http.NewRequest(http.MethodPut, e.srv.URL+"/api/engine/config", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	data = decodeData(t, resp)
	assert.Equal(t, "aggressive", data["tip_strategy"])
}

func TestRoutes_EngineConfigRejectsNegativeTip(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	cfg := domain.DefaultEngineConfig()
	cfg.TipMinSOL = -1
	body, _ := json.Marshal(cfg)

	req, _ := http.NewRequest(http.MethodPut, e.srv.URL+"/api/engine/config", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutes_Quote(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	body, _ := json.Marshal(domain.QuoteRequest{
		OutputMint:     "some-mint",
		AmountLamports: 1_000_000_000,
	})
	resp, err := http.Post(e.srv.URL+"/api/quote", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	data := decodeData(t, resp)

	assert.Equal(t, "some-mint", data["output_mint"])
	assert.Equal(t, float64(100), data["slippage_bps"])
	assert.NotEmpty(t, data["route_plan"])
}

func TestRoutes_QuoteRejectsEmptyRequest(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	resp, err := http.Post(e.srv.URL+"/api/quote", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
