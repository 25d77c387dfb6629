package model

import "time"

// IndicatorSet holds derived series aligned index-for-index with the
// bars they were computed from. Values inside an indicator's warm-up
// window are NaN.
type IndicatorSet struct {
	MA20      []float64
	MA50      []float64
	EMA12     []float64
	EMA26     []float64
	MACD      []float64
	Signal    []float64
	Histogram []float64
	RSI       []float64
	BBMid     []float64
	BBUpper   []float64
	BBLower   []float64
	VolumeMA  []float64
}

// Quote is the latest price snapshot for one symbol, recomputed each
// run from the last two daily closes.
type Quote struct {
	Symbol    string
	Price     float64
	Change    float64
	ChangePct float64
	High      float64
	Low       float64
	Volume    float64
}

// Scorecard pairs a display name with an optional quote. A nil quote
// means the symbol failed to fetch or had too little history; it is
// rendered as a placeholder.
type Scorecard struct {
	Name   string
	Symbol string
	Quote  *Quote
}

// SectorReturn is the percent return of one sector ETF over the short
// lookback window.
type SectorReturn struct {
	Name      string
	Symbol    string
	ReturnPct float64
}

// ChartData bundles a price series with its computed indicators for
// one charted symbol.
type ChartData struct {
	Series     *PriceSeries
	Indicators *IndicatorSet
}

// FeaturedChart is a per-stock chart slot. Chart is nil when the fetch
// failed; the renderer draws an empty panel in that case.
type FeaturedChart struct {
	Symbol string
	Chart  *ChartData
}

// DashboardModel is everything one render needs. It is built once per
// run from data fetched in that run and discarded afterwards.
type DashboardModel struct {
	GeneratedAt     time.Time
	Indices         []Scorecard
	Watchlist       []Scorecard
	WatchlistRanked []Scorecard
	Sectors         []SectorReturn
	Benchmark       *ChartData
	Featured        []FeaturedChart
}
