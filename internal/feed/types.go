package feed

import "strconv"

// Mirror structs for the DexScreener search response.
// Every sub-object is optional: brand-new or illiquid pools come back with
// whole sections missing, so pointers everywhere and helpers that collapse
// nil to zero.

type SearchResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"` // null for "no results"
}

type Pair struct {
	ChainID       string       `json:"chainId"`
	DexID         string       `json:"dexId"`
	PairAddress   string       `json:"pairAddress"`
	BaseToken     Token        `json:"baseToken"`
	PriceUSD      *string      `json:"priceUsd"` // decimal as string, absent for pools without a trade
	Liquidity     *Liquidity   `json:"liquidity"`
	Volume        *Volume      `json:"volume"`
	PriceChange   *PriceChange `json:"priceChange"`
	Txns          *Txns        `json:"txns"`
	MarketCap     *float64     `json:"marketCap"`
	FDV           *float64     `json:"fdv"`
	PairCreatedAt *int64       `json:"pairCreatedAt"` // unix millis
}

type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type Liquidity struct {
	USD *float64 `json:"usd"`
}

type Volume struct {
	H24 *float64 `json:"h24"`
	H6  *float64 `json:"h6"`
	H1  *float64 `json:"h1"`
}

type PriceChange struct {
	M5  *float64 `json:"m5"`
	H1  *float64 `json:"h1"`
	H6  *float64 `json:"h6"`
	H24 *float64 `json:"h24"`
}

type Txns struct {
	H1  *TxnCount `json:"h1"`
	H24 *TxnCount `json:"h24"`
}

type TxnCount struct {
	Buys  *uint64 `json:"buys"`
	Sells *uint64 `json:"sells"`
}

func f64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func u64(p *uint64) uint64 {
	if p == nil {
		return 0
	}
	return *p
}

func (p *Pair) LiquidityUSD() float64 {
	if p.Liquidity == nil {
		return 0
	}
	return f64(p.Liquidity.USD)
}

func (p *Pair) VolumeH1() float64 {
	if p.Volume == nil {
		return 0
	}
	return f64(p.Volume.H1)
}

func (p *Pair) VolumeH6() float64 {
	if p.Volume == nil {
		return 0
	}
	return f64(p.Volume.H6)
}

func (p *Pair) VolumeH24() float64 {
	if p.Volume == nil {
		return 0
	}
	return f64(p.Volume.H24)
}

func (p *Pair) PriceChangeM5() float64 {
	if p.PriceChange == nil {
		return 0
	}
	return f64(p.PriceChange.M5)
}

func (p *Pair) PriceChangeH1() float64 {
	if p.PriceChange == nil {
		return 0
	}
	return f64(p.PriceChange.H1)
}

func (p *Pair) PriceChangeH6() float64 {
	if p.PriceChange == nil {
		return 0
	}
	return f64(p.PriceChange.H6)
}

func (p *Pair) PriceChangeH24() float64 {
	if p.PriceChange == nil {
		return 0
	}
	return f64(p.PriceChange.H24)
}

func (p *Pair) TxnsH1() (buys, sells uint64) {
	if p.Txns == nil || p.Txns.H1 == nil {
		return 0, 0
	}
	return u64(p.Txns.H1.Buys), u64(p.Txns.H1.Sells)
}

func (p *Pair) TxnsH24() (buys, sells uint64) {
	if p.Txns == nil || p.Txns.H24 == nil {
		return 0, 0
	}
	return u64(p.Txns.H24.Buys), u64(p.Txns.H24.Sells)
}

// PriceUSDValue parses the decimal price string, 0 when absent or malformed.
func (p *Pair) PriceUSDValue() float64 {
	if p.PriceUSD == nil {
		return 0
	}
	v, err := strconv.ParseFloat(*p.PriceUSD, 64)
	if err != nil {
		return 0
	}
	return v
}

func (p *Pair) MarketCapUSD() float64 { return f64(p.MarketCap) }

func (p *Pair) FDVUSD() float64 { return f64(p.FDV) }

// CreatedAtMillis returns the pair creation time and whether the feed sent it.
func (p *Pair) CreatedAtMillis() (int64, bool) {
	if p.PairCreatedAt == nil {
		return 0, false
	}
	return *p.PairCreatedAt, true
}
