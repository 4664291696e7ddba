package netsim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerCfg "gitlab.com/nevasik7/alerting/config"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/state"
)

func newTestLogger() logger.Logger {
	return logger.New(loggerCfg.LoggerCfg{
		Level:  "error",
		Format: "json",
	})
}

func TestStep_DriftsFromDefaults(t *testing.T) {
	t.Parallel()

	start := time.Unix(700, 0) // 700%7==0, 700%5==0
	stats := state.NewNetworkStatsStore(start)
	sim := New(newTestLogger(), stats)

	before := stats.Snapshot()
	sim.Step(start)
	after := stats.Snapshot()

	// (0-3)*100 off the 3200 default
	assert.Equal(t, uint64(2_900), after.TPS)
	assert.Equal(t, before.CurrentSlot+75, after.CurrentSlot)
	assert.Equal(t, after.CurrentSlot/432_000, after.Epoch)

	// 2900 sits in the medium band
	assert.Equal(t, uint64(10_000), after.PriorityFeeEstimate)
	assert.Equal(t, "medium", after.CongestionLevel)

	// (0-2)*0.15 off the 140.0 default
	assert.InDelta(t, 139.7, after.SolPriceUSD, 1e-9)
	assert.Equal(t, start, after.LastUpdated)
}

func TestStep_ClampsAtBandEdges(t *testing.T) {
	t.Parallel()

	now := time.Unix(700, 0) // max negative drift each step
	stats := state.NewNetworkStatsStore(now)
	sim := New(newTestLogger(), stats)

	for i := 0; i < 200; i++ {
		sim.Step(now)
	}

	got := stats.Snapshot()
	assert.Equal(t, uint64(2_000), got.TPS)
	assert.InDelta(t, 130.0, got.SolPriceUSD, 1e-9)

	// floor throughput means maximum congestion
	assert.Equal(t, uint64(50_000), got.PriorityFeeEstimate)
	assert.Equal(t, "high", got.CongestionLevel)
}

func TestStep_SlotAlwaysAdvances(t *testing.T) {
	t.Parallel()

	now := time.Unix(701, 0)
	stats := state.NewNetworkStatsStore(now)
	sim := New(newTestLogger(), stats)

	before := stats.Snapshot().CurrentSlot
	for i := 0; i < 10; i++ {
		sim.Step(now)
	}

	require.Equal(t, before+750, stats.Snapshot().CurrentSlot)
}

func TestFeeTier_Bands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tps       uint64
		fee       uint64
		congested string
	}{
		{2_000, 50_000, "high"},
		{2_500, 50_000, "high"},
		{2_501, 10_000, "medium"},
		{3_500, 10_000, "medium"},
		{3_501, 5_000, "low"},
		{4_500, 5_000, "low"},
		{4_501, 1_000, "low"},
		{5_000, 1_000, "low"},
	}
	for _, tc := range cases {
		fee, level := feeTier(tc.tps)
		if fee != tc.fee || level != tc.congested {
			t.Fatalf("feeTier(%d) = (%d, %s), want (%d, %s)", tc.tps, fee, level, tc.fee, tc.congested)
		}
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	stats := state.NewNetworkStatsStore(time.Now())
	sim := New(newTestLogger(), stats)

	require.NoError(t, sim.Start(time.Second))
	sim.Stop()
}
