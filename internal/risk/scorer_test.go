package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sniperscope/internal/feed"
)

// --- helpers ---

func fp(v float64) *float64 { return &v }
func up(v uint64) *uint64   { return &v }
func ip(v int64) *int64     { return &v }

func pairAgedHours(now time.Time, hours int64) *int64 {
	return ip(now.Add(-time.Duration(hours) * time.Hour).UnixMilli())
}

func healthyPair(now time.Time) feed.Pair {
	return feed.Pair{
		ChainID:       "solana",
		PairAddress:   "pair1",
		Liquidity:     &feed.Liquidity{USD: fp(20_000)},
		Volume:        &feed.Volume{H1: fp(6_000)},
		Txns:          &feed.Txns{H1: &feed.TxnCount{Buys: up(40), Sells: up(20)}},
		PairCreatedAt: pairAgedHours(now, 8),
	}
}

// --- tests ---

func TestScore_HealthyPairIsSafe(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := healthyPair(now)

	got := Score(&p, now)

	// 50 +15 liq +10 vol +10 txns +10 age
	assert.Equal(t, uint8(95), got.Score)
	assert.Equal(t, "SAFE", got.Level)
	require.Len(t, got.Flags, 4)
	for _, f := range got.Flags {
		assert.True(t, f.Passed, "flag %s should pass", f.Name)
	}
}

func TestScore_HoneypotFloorsAtZero(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := feed.Pair{
		Liquidity:     &feed.Liquidity{USD: fp(200)},
		Volume:        &feed.Volume{H1: fp(0)},
		Txns:          &feed.Txns{H1: &feed.TxnCount{Buys: up(10), Sells: up(0)}},
		PairCreatedAt: ip(now.UnixMilli()),
	}

	got := Score(&p, now)

	// 50 -20 liq -15 vol -25 sellblock -10 age = -20, clamped
	assert.Equal(t, uint8(0), got.Score)
	assert.Equal(t, "CRITICAL", got.Level)

	names := make([]string, 0, len(got.Flags))
	for _, f := range got.Flags {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Liquidity", "Volume", "Sell Block", "Pool Age"}, names)
}

func TestScore_MidAgeSolidPair(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := feed.Pair{
		Liquidity:     &feed.Liquidity{USD: fp(15_000)},
		Volume:        &feed.Volume{H1: fp(6_000)},
		Txns:          &feed.Txns{H1: &feed.TxnCount{Buys: up(40), Sells: up(20)}},
		FDV:           fp(1_000_000),
		PairCreatedAt: pairAgedHours(now, 2),
	}

	got := Score(&p, now)

	// 50 +15 liq +10 vol +10 txns; 2h sits in the silent age band,
	// and a $1M FDV draws no flag
	assert.Equal(t, uint8(85), got.Score)
	assert.Equal(t, "SAFE", got.Level)
	require.Len(t, got.Flags, 3)
	for _, f := range got.Flags {
		assert.NotEqual(t, "Pool Age", f.Name)
		assert.True(t, f.Passed, "flag %s should pass", f.Name)
	}
}

func TestScore_NearFloorWithoutClamping(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := feed.Pair{
		Liquidity:     &feed.Liquidity{USD: fp(200)},
		Volume:        &feed.Volume{H1: fp(0)},
		Txns:          &feed.Txns{H1: &feed.TxnCount{Buys: up(2), Sells: up(0)}},
		PairCreatedAt: ip(now.UnixMilli()),
	}

	got := Score(&p, now)

	// 50 -20 liq -15 vol -10 age, too few buys for the sell-block rule
	assert.Equal(t, uint8(5), got.Score)
	assert.Equal(t, "CRITICAL", got.Level)
	require.Len(t, got.Flags, 3)
}

func TestScore_AbsurdFDVPenalized(t *testing.T) {
	t.Parallel()

	now := time.Now()
	base := healthyPair(now)
	inflated := healthyPair(now)
	inflated.FDV = fp(200_000_000)

	plain := Score(&base, now)
	flagged := Score(&inflated, now)

	assert.Equal(t, plain.Score-15, flagged.Score)
	assert.Equal(t, "FDV", flagged.Flags[len(flagged.Flags)-1].Name)
}

func TestScore_MissingCreatedAtReadsAsBrandNew(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := healthyPair(now)
	p.PairCreatedAt = nil

	got := Score(&p, now)

	// loses the +10 maturity bonus and takes the -10 very-new penalty
	assert.Equal(t, uint8(75), got.Score)

	var found bool
	for _, f := range got.Flags {
		if f.Name == "Pool Age" {
			found = true
			assert.Equal(t, "warning", f.Severity)
		}
	}
	assert.True(t, found, "very-new flag expected")
}

func TestScore_FutureCreatedAtClampsToZeroAge(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := healthyPair(now)
	p.PairCreatedAt = ip(now.Add(2 * time.Hour).UnixMilli())

	got := Score(&p, now)

	// same as brand-new, never a maturity bonus from an underflowed age
	assert.Equal(t, uint8(75), got.Score)
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Now()
	p := healthyPair(now)

	first := Score(&p, now)
	second := Score(&p, now)
	require.Equal(t, first, second)
}

func TestLevelFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  string
	}{
		{100, "SAFE"},
		{80, "SAFE"},
		{79, "CAUTION"},
		{60, "CAUTION"},
		{59, "DANGER"},
		{30, "DANGER"},
		{29, "CRITICAL"},
		{0, "CRITICAL"},
	}
	for _, tc := range cases {
		if got := levelFor(tc.score); got != tc.want {
			t.Fatalf("levelFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
