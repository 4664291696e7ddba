package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerCfg "gitlab.com/nevasik7/alerting/config"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/domain"
)

// --- helpers ---

func newTestLogger() logger.Logger {
	return logger.New(loggerCfg.LoggerCfg{
		Level:  "error",
		Format: "json",
	})
}

func runTestServer(t *testing.T) (*server.Server, string) {
	t.Helper()

	opts := natsserver.DefaultTestOptions
	opts.Port = -1 // random free port
	srv := natsserver.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	return srv, fmt.Sprintf("nats://%s", srv.Addr().String())
}

// --- tests ---

func TestNew_ValidatesConfig(t *testing.T) {
	t.Parallel()

	lg := newTestLogger()

	_, err := New(lg, nil)
	assert.Error(t, err)

	_, err = New(lg, &Config{Enabled: true})
	assert.Error(t, err)
}

func TestPublish_DeliversPrefixedSubject(t *testing.T) {
	t.Parallel()

	_, url := runTestServer(t)

	cl, err := New(newTestLogger(), &Config{Enabled: true, URL: url, BroadcastPrefix: "sniper"})
	require.NoError(t, err)
	defer cl.Close()

	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("sniper.opportunities")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	opp := domain.Opportunity{ID: "opp-1", TokenSymbol: "PUMP", Status: domain.StatusDetected}
	require.NoError(t, cl.Publish(context.Background(), "opportunities", opp))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var got domain.Opportunity
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "opp-1", got.ID)
	assert.Equal(t, "PUMP", got.TokenSymbol)
}

func TestPublish_DefaultPrefix(t *testing.T) {
	t.Parallel()

	_, url := runTestServer(t)

	cl, err := New(newTestLogger(), &Config{Enabled: true, URL: url})
	require.NoError(t, err)
	defer cl.Close()

	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("sniperscope.snipes")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	require.NoError(t, cl.Publish(context.Background(), "snipes", map[string]string{"sig": "abc"}))

	_, err = sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, url := runTestServer(t)

	cl, err := New(newTestLogger(), &Config{Enabled: true, URL: url})
	require.NoError(t, err)
	defer cl.Close()

	assert.NoError(t, cl.Health(context.Background()))
	assert.True(t, cl.Ready())

	srv.Shutdown()

	// reconnect loop means status degrades rather than panics
	require.Eventually(t, func() bool {
		return cl.Health(context.Background()) != nil
	}, 5*time.Second, 50*time.Millisecond)
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	_, url := runTestServer(t)

	cl, err := New(newTestLogger(), &Config{Enabled: true, URL: url})
	require.NoError(t, err)

	require.NoError(t, cl.Close())
	require.NoError(t, cl.Close())
}
