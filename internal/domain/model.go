package domain

import "time"

// Lifecycle status of a detected opportunity.
// Missed is part of the dashboard enum but never assigned here;
// a future policy component owns that transition.
type OpportunityStatus string

const (
	StatusDetected OpportunityStatus = "DETECTED"
	StatusSniped   OpportunityStatus = "SNIPED"
	StatusMissed   OpportunityStatus = "MISSED"
)

// One detected pair, as served to the dashboard.
// Numeric fields the feed omits are stored as 0, never as null.
type Opportunity struct {
	ID             string            `json:"id"`
	TokenName      string            `json:"token_name"`
	TokenSymbol    string            `json:"token_symbol"`
	TokenAddress   string            `json:"token_address"`
	PairAddress    string            `json:"pair_address"`
	DexID          string            `json:"dex_id"`
	PriceUSD       float64           `json:"price_usd"`
	LiquidityUSD   float64           `json:"liquidity_usd"`
	VolumeH24      float64           `json:"volume_h24"`
	VolumeH6       float64           `json:"volume_h6"`
	VolumeH1       float64           `json:"volume_h1"`
	PriceChangeM5  float64           `json:"price_change_m5"`
	PriceChangeH1  float64           `json:"price_change_h1"`
	PriceChangeH6  float64           `json:"price_change_h6"`
	PriceChangeH24 float64           `json:"price_change_h24"`
	MarketCap      float64           `json:"market_cap"`
	FDV            float64           `json:"fdv"`
	TxnsH1Buys     uint64            `json:"txns_h1_buys"`
	TxnsH1Sells    uint64            `json:"txns_h1_sells"`
	TxnsH24Buys    uint64            `json:"txns_h24_buys"`
	TxnsH24Sells   uint64            `json:"txns_h24_sells"`
	PairCreatedAt  int64             `json:"pair_created_at"` // unix millis from the feed
	DetectedAt     time.Time         `json:"detected_at"`
	Status         OpportunityStatus `json:"status"`
	RiskScore      *RiskAssessment   `json:"risk_score,omitempty"`
}

// Heuristic honeypot/rug-pull assessment. Immutable once attached,
// recomputed fresh on every detection.
type RiskAssessment struct {
	Score uint8      `json:"score"` // 0 = very risky, 100 = safe
	Level string     `json:"level"` // SAFE|CAUTION|DANGER|CRITICAL
	Flags []RiskFlag `json:"flags"`
}

type RiskFlag struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"` // info|warning|danger
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelSuccess LogLevel = "SUCCESS"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
)

// Entry of the dashboard "System Logs" panel.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// Record of one simulated snipe.
type ActionHistoryEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	TokenSymbol  string    `json:"token_symbol"`
	TokenAddress string    `json:"token_address"`
	Action       string    `json:"action"` // BUY|SELL
	AmountSOL    float64   `json:"amount_sol"`
	PriceUSD     float64   `json:"price_usd"`
	TipSOL       float64   `json:"tip_sol"`
	BundleID     string    `json:"bundle_id"`
	BlockEngine  string    `json:"block_engine"`
	LandingSlot  uint64    `json:"landing_slot"`
	Status       string    `json:"status"` // LANDED|DROPPED|PENDING
	PnlPct       float64   `json:"pnl_pct"`
	Simulation   bool      `json:"simulation"`
}

// Simulated chain-level metrics, mutated only by the netsim task.
type NetworkStats struct {
	TPS                 uint64    `json:"tps"`
	CurrentSlot         uint64    `json:"current_slot"`
	Epoch               uint64    `json:"epoch"`
	PriorityFeeEstimate uint64    `json:"priority_fee_estimate"` // micro-lamports per CU
	CongestionLevel     string    `json:"congestion_level"`      // low|medium|high
	ActiveValidators    uint64    `json:"active_validators"`
	SolPriceUSD         float64   `json:"sol_price_usd"`
	LastUpdated         time.Time `json:"last_updated"`
}

func DefaultNetworkStats(now time.Time) NetworkStats {
	return NetworkStats{
		TPS:                 3200,
		CurrentSlot:         290_000_000,
		Epoch:               600,
		PriorityFeeEstimate: 5_000,
		CongestionLevel:     "medium",
		ActiveValidators:    1_900,
		SolPriceUSD:         140.0,
		LastUpdated:         now,
	}
}

// Bundle-engine submission parameters, replaceable at runtime over the API.
type EngineConfig struct {
	TipMinSOL                float64 `json:"tip_min_sol"`
	TipMaxSOL                float64 `json:"tip_max_sol"`
	BlockEngine              string  `json:"block_engine"`
	TipStrategy              string  `json:"tip_strategy"` // fixed|dynamic|aggressive
	MaxTxnsPerBundle         uint8   `json:"max_txns_per_bundle"`
	SlippageBps              uint64  `json:"slippage_bps"`
	AntiSandwich             bool    `json:"anti_sandwich"`
	ComputeUnitLimit         uint32  `json:"compute_unit_limit"`
	PriorityFeeMicroLamports uint64  `json:"priority_fee_micro_lamports"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TipMinSOL:                0.0001,
		TipMaxSOL:                0.005,
		BlockEngine:              "amsterdam",
		TipStrategy:              "dynamic",
		MaxTxnsPerBundle:         1,
		SlippageBps:              100,
		AntiSandwich:             true,
		ComputeUnitLimit:         200_000,
		PriorityFeeMicroLamports: 5_000,
	}
}

type QuoteRequest struct {
	InputMint      string  `json:"input_mint"`
	OutputMint     string  `json:"output_mint"`
	AmountLamports uint64  `json:"amount_lamports"`
	SlippageBps    *uint64 `json:"slippage_bps,omitempty"`
}

// Simulated aggregator swap quote.
type Quote struct {
	InputMint       string      `json:"input_mint"`
	OutputMint      string      `json:"output_mint"`
	InputAmount     uint64      `json:"input_amount"`
	OutputAmount    uint64      `json:"output_amount"`
	PriceImpactPct  float64     `json:"price_impact_pct"`
	RoutePlan       []RoutePlan `json:"route_plan"`
	SwapFeeLamports uint64      `json:"swap_fee_lamports"`
	SlippageBps     uint64      `json:"slippage_bps"`
	EstimatedTimeMS uint64      `json:"estimated_time_ms"`
}

type RoutePlan struct {
	Dex        string  `json:"dex"`
	InputMint  string  `json:"input_mint"`
	OutputMint string  `json:"output_mint"`
	FeePct     float64 `json:"fee_pct"`
	Liquidity  float64 `json:"liquidity"`
}
