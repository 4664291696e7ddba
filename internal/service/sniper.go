package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/nevasik7/alerting/logger"

	"sniperscope/internal/domain"
	"sniperscope/internal/metrics"
	"sniperscope/internal/pubsub"
	"sniperscope/internal/state"
)

const (
	snipeAmountSOL  = 0.1
	swapFeeLamports = 5_000
	lamportsPerSOL  = 1_000_000_000.0

	// fallback price for quotes on tokens we no longer hold
	fallbackPriceUSD = 0.00001
	// simulated single-route pool depth used for price impact
	routeLiquidityUSD = 50_000.0

	solMint = "So11111111111111111111111111111111111111112"
)

// SniperService is the single orchestration point behind the transport:
// snapshot reads plus the two simulated actions (snipe, quote).
// All state access goes through the guarded stores; no lock is ever held
// across two of them at once.
type SniperService struct {
	log     logger.Logger
	store   *state.OpportunityStore
	sink    *state.LogSink
	history *state.ActionHistory
	network *state.NetworkStatsStore
	engine  *state.EngineStore
	bcast   pubsub.Broadcaster
}

func NewSniperService(
	log logger.Logger,
	store *state.OpportunityStore,
	sink *state.LogSink,
	history *state.ActionHistory,
	network *state.NetworkStatsStore,
	engine *state.EngineStore,
	bcast pubsub.Broadcaster,
) *SniperService {
	if bcast == nil {
		bcast = pubsub.Noop{}
	}
	return &SniperService{
		log:     log,
		store:   store,
		sink:    sink,
		history: history,
		network: network,
		engine:  engine,
		bcast:   bcast,
	}
}

func (s *SniperService) Opportunities(_ context.Context) []domain.Opportunity {
	return s.store.Snapshot()
}

func (s *SniperService) RecentLogs(_ context.Context, n int) []domain.LogEntry {
	return s.sink.Recent(n)
}

func (s *SniperService) ClearLogs(_ context.Context) int {
	cleared := s.sink.Clear()
	s.log.Infof("Logs cleared (%d entries removed)", cleared)
	return cleared
}

func (s *SniperService) History(_ context.Context, n int) []domain.ActionHistoryEntry {
	return s.history.Recent(n)
}

func (s *SniperService) Network(_ context.Context) domain.NetworkStats {
	return s.network.Snapshot()
}

func (s *SniperService) Engine(_ context.Context) domain.EngineConfig {
	return s.engine.Snapshot()
}

// UpdateEngine replaces the bundle-engine config. Shape validation only;
// cross-field checks are not this core's business.
func (s *SniperService) UpdateEngine(_ context.Context, cfg domain.EngineConfig) error {
	if cfg.TipMinSOL < 0 || cfg.TipMaxSOL < 0 {
		return fmt.Errorf("engine config: negative tip")
	}

	s.engine.Replace(cfg)

	s.log.Infof("Engine config updated: strategy=%s, tip=%v-%v SOL, engine=%s",
		cfg.TipStrategy, cfg.TipMinSOL, cfg.TipMaxSOL, cfg.BlockEngine)
	s.sink.Append(domain.LevelInfo, fmt.Sprintf(
		"Engine config updated → strategy=%s, tip=%v-%v SOL", cfg.TipStrategy, cfg.TipMinSOL, cfg.TipMaxSOL))
	return nil
}

type SnipeResult struct {
	Success    bool   `json:"success"`
	Simulation bool   `json:"simulation"`
	Message    string `json:"message"`
	Signature  string `json:"signature"`
	Token      string `json:"token"`
}

// Snipe simulates a bundle submission for the token address. The status flip
// is a no-op when the opportunity is gone (evicted), never an error; the
// simulation still runs and is recorded.
func (s *SniperService) Snipe(ctx context.Context, tokenAddress string) SnipeResult {
	s.log.Infof("Simulating snipe for: %s", tokenAddress)

	found := s.store.MarkSniped(tokenAddress)
	if !found {
		s.log.Debugf("Snipe target %s not in store (already evicted)", tokenAddress)
	}

	short := domain.ShortAddress(tokenAddress)
	sig := fakeSignature()

	// store lock released above; sink appends take its own lock one by one
	s.sink.Append(domain.LevelInfo, fmt.Sprintf("SNIPE initiated → %s", short))
	s.sink.Append(domain.LevelInfo, "Constructing bundle (1 tx)...")
	s.sink.Append(domain.LevelInfo, "Estimating optimal tip...")
	s.sink.Append(domain.LevelInfo, "Signing transaction with keypair...")
	s.sink.Append(domain.LevelInfo, "Submitting to block engine...")
	s.sink.Append(domain.LevelSuccess, fmt.Sprintf("Bundle accepted | Sig: %s", sig))
	s.sink.Append(domain.LevelSuccess, "[SIMULATION] No real funds were used.")

	engine := s.engine.Snapshot()
	net := s.network.Snapshot()

	symbol := tokenAddress
	if len(symbol) > 6 {
		symbol = symbol[:6]
	}
	var price float64
	if opp, ok := s.store.FindByToken(tokenAddress); ok {
		symbol = opp.TokenSymbol
		price = opp.PriceUSD
	}

	entry := domain.ActionHistoryEntry{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		TokenSymbol:  symbol,
		TokenAddress: tokenAddress,
		Action:       "BUY",
		AmountSOL:    snipeAmountSOL,
		PriceUSD:     price,
		TipSOL:       engine.TipMinSOL,
		BundleID:     sig,
		BlockEngine:  engine.BlockEngine,
		LandingSlot:  net.CurrentSlot + 2,
		Status:       "LANDED",
		Simulation:   true,
	}
	s.history.Append(entry)
	metrics.SnipesSimulated.Inc()

	if err := s.bcast.Publish(ctx, "snipes", entry); err != nil {
		s.log.Errorf("Failed to broadcast snipe for %s: %v", short, err)
	}

	return SnipeResult{
		Success:    true,
		Simulation: true,
		Message:    "Bundle simulation complete",
		Signature:  sig,
		Token:      tokenAddress,
	}
}

// Quote fabricates an aggregator swap quote from the cached price and the
// simulated network state. Stateless: nothing is stored.
func (s *SniperService) Quote(_ context.Context, req domain.QuoteRequest) domain.Quote {
	slippage := uint64(100)
	if req.SlippageBps != nil {
		slippage = *req.SlippageBps
	}

	price := fallbackPriceUSD
	if opp, ok := s.store.FindByToken(req.OutputMint); ok && opp.PriceUSD > 0 {
		price = opp.PriceUSD
	}

	solPrice := s.network.Snapshot().SolPriceUSD

	inputSOL := float64(req.AmountLamports) / lamportsPerSOL
	inputUSD := inputSOL * solPrice
	outputTokens := 0.0
	if price > 0 {
		outputTokens = inputUSD / price
	}
	priceImpact := inputUSD / routeLiquidityUSD * 100

	s.sink.Append(domain.LevelInfo, fmt.Sprintf(
		"Quote: %.4f SOL → %.0f tokens | impact %.2f%%", inputSOL, outputTokens, priceImpact))

	return domain.Quote{
		InputMint:    req.InputMint,
		OutputMint:   req.OutputMint,
		InputAmount:  req.AmountLamports,
		OutputAmount: uint64(outputTokens * 1_000_000), // 6 decimals, SPL standard
		// two decimal places
		PriceImpactPct: float64(int64(priceImpact*100+0.5)) / 100,
		RoutePlan: []domain.RoutePlan{{
			Dex:        "Raydium",
			InputMint:  solMint,
			OutputMint: req.OutputMint,
			FeePct:     0.25,
			Liquidity:  routeLiquidityUSD,
		}},
		SwapFeeLamports: swapFeeLamports,
		SlippageBps:     slippage,
		EstimatedTimeMS: 400, // ~1 slot
	}
}

func fakeSignature() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return a[:8] + "…" + b[:8]
}
