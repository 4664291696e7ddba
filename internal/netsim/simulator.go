package netsim

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/domain"
	"sniperscope/internal/state"
)

const (
	tpsFloor   = 2_000
	tpsCeiling = 5_000

	// ~2.5 slots/second over a 30s cycle
	slotsPerStep  = 75
	slotsPerEpoch = 432_000

	solPriceFloor   = 130.0
	solPriceCeiling = 160.0
)

// Simulator periodically drifts the shared network-stats record.
// It shares nothing with the feed pipeline beyond the stats store lock and
// may interleave with poll cycles arbitrarily.
type Simulator struct {
	log   logger.Logger
	stats *state.NetworkStatsStore
	cron  *cron.Cron
	now   func() time.Time
}

func New(log logger.Logger, stats *state.NetworkStatsStore) *Simulator {
	return &Simulator{
		log:   log,
		stats: stats,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start schedules a Step every interval. Step is quick and the interval is
// far larger, so runs never overlap.
func (s *Simulator) Start(interval time.Duration) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, func() { s.Step(s.now()) }); err != nil {
		return fmt.Errorf("register netsim task: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Network stats simulator started, interval=%s", interval)
	return nil
}

func (s *Simulator) Stop() {
	s.cron.Stop()
	s.log.Info("Network stats simulator stopped")
}

// Step advances the record one cycle: throughput drifts inside its band, the
// fee estimate and congestion label follow the throughput tier, the slot
// counter advances with the epoch derived from it, and the reference price
// drifts inside its clamp.
func (s *Simulator) Step(now time.Time) {
	s.stats.Update(func(st *domain.NetworkStats) {
		tpsDelta := ((now.Unix() % 7) - 3) * 100
		tps := int64(st.TPS) + tpsDelta
		if tps < tpsFloor {
			tps = tpsFloor
		}
		if tps > tpsCeiling {
			tps = tpsCeiling
		}
		st.TPS = uint64(tps)

		st.CurrentSlot += slotsPerStep
		st.Epoch = st.CurrentSlot / slotsPerEpoch

		st.PriorityFeeEstimate, st.CongestionLevel = feeTier(st.TPS)

		priceDelta := float64((now.Unix()%5)-2) * 0.15
		price := st.SolPriceUSD + priceDelta
		if price < solPriceFloor {
			price = solPriceFloor
		}
		if price > solPriceCeiling {
			price = solPriceCeiling
		}
		st.SolPriceUSD = price

		st.LastUpdated = now
	})
}

// feeTier maps a throughput band to the fee estimate and congestion label.
// The two always move together.
func feeTier(tps uint64) (uint64, string) {
	switch {
	case tps <= 2_500:
		return 50_000, "high"
	case tps <= 3_500:
		return 10_000, "medium"
	case tps <= 4_500:
		return 5_000, "low"
	default:
		return 1_000, "low"
	}
}
