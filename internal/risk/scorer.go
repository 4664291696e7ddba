package risk

import (
	"fmt"
	"time"

	"sniperscope/internal/domain"
	"sniperscope/internal/feed"
)

// Heuristic score thresholds. Policy values, not tuned per venue.
const (
	baseScore = 50

	liqGoodUSD = 10_000.0
	liqLowUSD  = 1_000.0

	volActiveUSD = 5_000.0

	activeTxnCount  = 50
	honeypotMinBuys = 5

	fdvCeilingUSD = 100_000_000.0
)

// Score computes the risk assessment for one pair snapshot.
// Pure and deterministic for a fixed now: same snapshot, same score, same
// flag sequence. Rules append their flag in fixed order; rules that stay
// silent append nothing.
func Score(p *feed.Pair, now time.Time) domain.RiskAssessment {
	score := baseScore
	flags := make([]domain.RiskFlag, 0, 5)

	// 1. Liquidity depth
	liq := p.LiquidityUSD()
	switch {
	case liq > liqGoodUSD:
		score += 15
		flags = append(flags, domain.RiskFlag{
			Name:        "Liquidity",
			Severity:    "info",
			Description: fmt.Sprintf("Liquidity $%.0f — sufficient for trading", liq),
			Passed:      true,
		})
	case liq > liqLowUSD:
		score += 5
		flags = append(flags, domain.RiskFlag{
			Name:        "Liquidity",
			Severity:    "warning",
			Description: fmt.Sprintf("Liquidity $%.0f — low, high slippage risk", liq),
		})
	default:
		score -= 20
		flags = append(flags, domain.RiskFlag{
			Name:        "Liquidity",
			Severity:    "danger",
			Description: fmt.Sprintf("Liquidity $%.0f — critical, possible honeypot", liq),
		})
	}

	// 2. Real trading activity
	volH1 := p.VolumeH1()
	switch {
	case volH1 > volActiveUSD:
		score += 10
		flags = append(flags, domain.RiskFlag{
			Name:        "Volume",
			Severity:    "info",
			Description: fmt.Sprintf("Vol 1h $%.0f — active trading", volH1),
			Passed:      true,
		})
	case volH1 > 0:
		flags = append(flags, domain.RiskFlag{
			Name:        "Volume",
			Severity:    "warning",
			Description: fmt.Sprintf("Vol 1h $%.0f — low activity", volH1),
		})
	default:
		score -= 15
		flags = append(flags, domain.RiskFlag{
			Name:        "Volume",
			Severity:    "danger",
			Description: "No trading volume — possible honeypot",
		})
	}

	// 3. Buy/sell balance over the last hour
	buys, sells := p.TxnsH1()
	total := buys + sells
	if total > activeTxnCount {
		score += 10
		ratio := float64(buys) / float64(total)
		flags = append(flags, domain.RiskFlag{
			Name:        "Txn Activity",
			Severity:    "info",
			Description: fmt.Sprintf("%d txns 1h, buy ratio %.0f%%", total, ratio*100),
			Passed:      true,
		})
	} else if sells == 0 && buys > honeypotMinBuys {
		score -= 25
		flags = append(flags, domain.RiskFlag{
			Name:        "Sell Block",
			Severity:    "danger",
			Description: "No sells detected — possible honeypot (can't sell)",
		})
	}

	// 4. Pair age. Missing creation time reads as age 0: brand new.
	var ageHours int64
	if created, ok := p.CreatedAtMillis(); ok {
		ageMS := now.UnixMilli() - created
		if ageMS < 0 {
			ageMS = 0
		}
		ageHours = ageMS / (3600 * 1000)
	}
	if ageHours < 1 {
		score -= 10
		flags = append(flags, domain.RiskFlag{
			Name:        "Pool Age",
			Severity:    "warning",
			Description: "Pool < 1h old — very new, higher risk",
		})
	} else if ageHours > 6 {
		score += 10
		flags = append(flags, domain.RiskFlag{
			Name:        "Pool Age",
			Severity:    "info",
			Description: fmt.Sprintf("Pool %dh old — survived initial period", ageHours),
			Passed:      true,
		})
	}

	// 5. Absurd fully-diluted valuation
	if fdv := p.FDVUSD(); fdv > fdvCeilingUSD {
		score -= 15
		flags = append(flags, domain.RiskFlag{
			Name:        "FDV",
			Severity:    "danger",
			Description: fmt.Sprintf("FDV $%.0fM — unrealistically high", fdv/1_000_000),
		})
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.RiskAssessment{
		Score: uint8(score),
		Level: levelFor(score),
		Flags: flags,
	}
}

func levelFor(score int) string {
	switch {
	case score >= 80:
		return "SAFE"
	case score >= 60:
		return "CAUTION"
	case score >= 30:
		return "DANGER"
	default:
		return "CRITICAL"
	}
}
