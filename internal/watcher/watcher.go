package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/config"
	"sniperscope/internal/dedupe"
	"sniperscope/internal/domain"
	"sniperscope/internal/feed"
	"sniperscope/internal/metrics"
	"sniperscope/internal/pubsub"
	"sniperscope/internal/risk"
	"sniperscope/internal/state"
)

// Searcher is the slice of the feed client the watcher needs.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]feed.Pair, error)
}

// Watcher drives the fetch → filter → score → merge → log cycle on a fixed
// cadence. It is the only writer of the opportunity store and the only owner
// of the deduper.
type Watcher struct {
	log     logger.Logger
	cfg     *config.WatcherConfig
	feed    Searcher
	store   *state.OpportunityStore
	sink    *state.LogSink
	deduper dedupe.Deduper
	bcast   pubsub.Broadcaster

	queryIdx int
	now      func() time.Time
}

func New(
	log logger.Logger,
	cfg *config.WatcherConfig,
	searcher Searcher,
	store *state.OpportunityStore,
	sink *state.LogSink,
	deduper dedupe.Deduper,
	bcast pubsub.Broadcaster,
) *Watcher {
	if bcast == nil {
		bcast = pubsub.Noop{}
	}
	return &Watcher{
		log:     log,
		cfg:     cfg,
		feed:    searcher,
		store:   store,
		sink:    sink,
		deduper: deduper,
		bcast:   bcast,
		now:     time.Now,
	}
}

// Run loops until the context is cancelled. The sleep between cycles holds
// no lock and blocks nothing else.
func (w *Watcher) Run(ctx context.Context) {
	w.log.Infof("Watcher initialized — polling feed every %s", w.cfg.Interval)
	w.sink.Append(domain.LevelInfo, fmt.Sprintf("Watcher initialized — polling feed every %s", w.cfg.Interval))
	w.sink.Append(domain.LevelInfo, "Connecting to market-data feed...")
	w.sink.Append(domain.LevelSuccess, "Connection established")

	t := time.NewTicker(w.cfg.Interval)
	defer t.Stop()

	for {
		w.Cycle(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("Watcher stopped")
			return
		case <-t.C:
		}
	}
}

// Cycle runs one poll iteration. Errors from the feed never escape: they are
// logged and the next scheduled cycle is the retry.
func (w *Watcher) Cycle(ctx context.Context) {
	defer metrics.PollCycles.Inc()

	keyword := w.nextKeyword()
	w.sink.Append(domain.LevelInfo, fmt.Sprintf("Polling feed [query=%s]...", keyword))

	pairs, err := w.feed.Search(ctx, keyword)
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrDecode):
			metrics.FeedErrors.WithLabelValues("decode").Inc()
			w.log.Warnf("Feed parse error: %v", err)
			w.sink.Append(domain.LevelWarning, fmt.Sprintf("Parse error: %v", err))
		default:
			metrics.FeedErrors.WithLabelValues("unavailable").Inc()
			w.log.Errorf("Feed network error: %v", err)
			w.sink.Append(domain.LevelError, fmt.Sprintf("Network error: %v", err))
		}
		w.rotateDedupe()
		return
	}

	accepted := w.filter(pairs)
	if len(accepted) == 0 {
		w.sink.Append(domain.LevelInfo, "No new opportunities this cycle. Watching...")
		w.rotateDedupe()
		return
	}

	now := w.now()
	newOpps := make([]domain.Opportunity, 0, len(accepted))
	for i := range accepted {
		p := &accepted[i]
		w.deduper.Mark(p.PairAddress)
		newOpps = append(newOpps, w.buildOpportunity(p, now))
	}

	// Store first, then log sink: the two locks are never held together and
	// always taken in this order when one cycle touches both.
	w.store.Prepend(newOpps)
	metrics.StoreSize.Set(float64(w.store.Len()))
	metrics.OpportunitiesDetected.Add(float64(len(newOpps)))

	for i := range newOpps {
		opp := &newOpps[i]
		w.sink.Append(domain.LevelSuccess, fmt.Sprintf(
			"NEW POOL: %s (%s) | Liq $%.0f | $%.8f | %s",
			opp.TokenSymbol, opp.DexID, opp.LiquidityUSD, opp.PriceUSD,
			domain.ShortAddress(opp.TokenAddress),
		))

		if err = w.bcast.Publish(ctx, "opportunities", opp); err != nil {
			w.log.Errorf("Failed to broadcast opportunity %s: %v", opp.TokenSymbol, err)
		}
	}

	w.rotateDedupe()
}

// filter keeps candidates on the target chain, unseen, young enough and
// liquid enough, capped per cycle with source order preserved.
func (w *Watcher) filter(pairs []feed.Pair) []feed.Pair {
	nowMS := w.now().UnixMilli()
	maxAgeMS := w.cfg.MaxPairAge.Milliseconds()

	out := make([]feed.Pair, 0, w.cfg.MaxPerCycle)
	for i := range pairs {
		p := &pairs[i]
		if p.ChainID != w.cfg.ChainID {
			continue
		}
		if w.deduper.Seen(p.PairAddress) {
			continue
		}

		created, ok := p.CreatedAtMillis()
		if !ok {
			continue
		}
		// Clamp at zero so a future-stamped creation time cannot underflow
		// into a huge age.
		age := nowMS - created
		if age < 0 {
			age = 0
		}
		if age >= maxAgeMS {
			continue
		}

		if p.LiquidityUSD() <= w.cfg.MinLiquidityUSD {
			continue
		}

		out = append(out, *p)
		if len(out) == w.cfg.MaxPerCycle {
			break
		}
	}
	return out
}

func (w *Watcher) buildOpportunity(p *feed.Pair, now time.Time) domain.Opportunity {
	h1Buys, h1Sells := p.TxnsH1()
	h24Buys, h24Sells := p.TxnsH24()
	created, _ := p.CreatedAtMillis()
	assessment := risk.Score(p, now)

	return domain.Opportunity{
		ID:             uuid.NewString(),
		TokenName:      p.BaseToken.Name,
		TokenSymbol:    p.BaseToken.Symbol,
		TokenAddress:   p.BaseToken.Address,
		PairAddress:    p.PairAddress,
		DexID:          p.DexID,
		PriceUSD:       p.PriceUSDValue(),
		LiquidityUSD:   p.LiquidityUSD(),
		VolumeH24:      p.VolumeH24(),
		VolumeH6:       p.VolumeH6(),
		VolumeH1:       p.VolumeH1(),
		PriceChangeM5:  p.PriceChangeM5(),
		PriceChangeH1:  p.PriceChangeH1(),
		PriceChangeH6:  p.PriceChangeH6(),
		PriceChangeH24: p.PriceChangeH24(),
		MarketCap:      p.MarketCapUSD(),
		FDV:            p.FDVUSD(),
		TxnsH1Buys:     h1Buys,
		TxnsH1Sells:    h1Sells,
		TxnsH24Buys:    h24Buys,
		TxnsH24Sells:   h24Sells,
		PairCreatedAt:  created,
		DetectedAt:     now,
		Status:         domain.StatusDetected,
		RiskScore:      &assessment,
	}
}

func (w *Watcher) nextKeyword() string {
	kw := w.cfg.Keywords[w.queryIdx%len(w.cfg.Keywords)]
	w.queryIdx++
	return kw
}

func (w *Watcher) rotateDedupe() {
	if cleared, rotated := w.deduper.MaybeRotate(); rotated {
		metrics.DedupeRotations.Inc()
		w.log.Warnf("Seen-pairs cache rotated — %d entries cleared", cleared)
		w.sink.Append(domain.LevelWarning, fmt.Sprintf("Seen-pairs cache rotated — %d entries cleared", cleared))
	}
}
