package aggregate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Dashboard/internal/calculate"
	"github.com/Alias1177/Dashboard/internal/config"
	"github.com/Alias1177/Dashboard/internal/model"
)

// Fetcher is the market-data dependency of the aggregator.
type Fetcher interface {
	History(ctx context.Context, symbol string, days int) (*model.PriceSeries, error)
	Latest(ctx context.Context, symbol string) (*model.PriceSeries, error)
}

// Builder turns fetched price series into the dashboard model. A
// failed symbol becomes a placeholder; the build as a whole fails only
// when no symbol produced any data.
type Builder struct {
	fetcher Fetcher
	cfg     *config.Config
	params  calculate.Params
	logger  zerolog.Logger
}

// New creates a Builder for the given fetcher and configuration.
func New(fetcher Fetcher, cfg *config.Config) *Builder {
	return &Builder{
		fetcher: fetcher,
		cfg:     cfg,
		params: calculate.Params{
			MAFast:       cfg.Indicators.MAFast,
			MASlow:       cfg.Indicators.MASlow,
			MACDFast:     cfg.Indicators.MACDFast,
			MACDSlow:     cfg.Indicators.MACDSlow,
			MACDSignal:   cfg.Indicators.MACDSignal,
			RSIPeriod:    cfg.Indicators.RSIPeriod,
			BBPeriod:     cfg.Indicators.BBPeriod,
			BBStdDev:     cfg.Indicators.BBStdDev,
			VolumePeriod: cfg.Indicators.VolumePeriod,
		},
		logger: log.With().Str("component", "aggregator").Logger(),
	}
}

// Build fetches everything the dashboard needs and assembles the
// model. Fetches run concurrently; each goroutine writes its own slot,
// and the WaitGroup join makes all slots visible before assembly.
func (b *Builder) Build(ctx context.Context) (*model.DashboardModel, error) {
	m := &model.DashboardModel{GeneratedAt: time.Now()}

	var wg sync.WaitGroup
	var sectors []model.SectorReturn

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Indices = b.scorecards(ctx, b.cfg.Indices)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Watchlist = b.scorecards(ctx, b.cfg.Watchlist)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Benchmark = b.chart(ctx, b.cfg.Charts.Benchmark, b.cfg.Lookback.LongDays)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Featured = b.featuredCharts(ctx)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		sectors = b.sectorReturns(ctx)
	}()
	wg.Wait()

	m.Sectors = sectors
	m.WatchlistRanked = rankScorecards(m.Watchlist)

	if b.empty(m) {
		return nil, fmt.Errorf("no usable market data for any symbol")
	}
	return m, nil
}

func (b *Builder) empty(m *model.DashboardModel) bool {
	for _, c := range m.Indices {
		if c.Quote != nil {
			return false
		}
	}
	for _, c := range m.Watchlist {
		if c.Quote != nil {
			return false
		}
	}
	for _, f := range m.Featured {
		if f.Chart != nil {
			return false
		}
	}
	return m.Benchmark == nil && len(m.Sectors) == 0
}

// scorecards derives one scorecard per symbol, fetching concurrently.
// Each goroutine owns one slot of the result slice.
func (b *Builder) scorecards(ctx context.Context, list config.SymbolList) []model.Scorecard {
	cards := make([]model.Scorecard, len(list))
	var wg sync.WaitGroup
	for i, s := range list {
		wg.Add(1)
		go func(i int, s config.Symbol) {
			defer wg.Done()
			cards[i] = b.scorecard(ctx, s)
		}(i, s)
	}
	wg.Wait()
	return cards
}

func (b *Builder) scorecard(ctx context.Context, s config.Symbol) model.Scorecard {
	card := model.Scorecard{Name: s.Name, Symbol: s.Ticker}

	series, err := b.fetcher.Latest(ctx, s.Ticker)
	if err != nil {
		b.logger.Warn().Err(err).Str("symbol", s.Ticker).Msg("quote fetch failed, rendering placeholder")
		return card
	}
	quote, err := quoteFrom(s.Ticker, series)
	if err != nil {
		b.logger.Warn().Err(err).Str("symbol", s.Ticker).Msg("quote derivation failed, rendering placeholder")
		return card
	}
	card.Quote = quote
	return card
}

// quoteFrom derives the latest-close quote from the last two bars.
func quoteFrom(symbol string, series *model.PriceSeries) (*model.Quote, error) {
	if series.Len() < 2 {
		return nil, fmt.Errorf("%w: need two closes for %s, have %d",
			model.ErrMissingData, symbol, series.Len())
	}
	bars := series.Bars
	prev := bars[len(bars)-2].Close
	last := bars[len(bars)-1]
	if prev == 0 {
		return nil, fmt.Errorf("%w: zero previous close for %s", model.ErrMissingData, symbol)
	}
	change := last.Close - prev
	return &model.Quote{
		Symbol:    symbol,
		Price:     last.Close,
		Change:    change,
		ChangePct: change / prev * 100,
		High:      last.High,
		Low:       last.Low,
		Volume:    last.Volume,
	}, nil
}

func (b *Builder) chart(ctx context.Context, symbol string, days int) *model.ChartData {
	series, err := b.fetcher.History(ctx, symbol, days)
	if err != nil {
		b.logger.Warn().Err(err).Str("symbol", symbol).Msg("history fetch failed, skipping chart")
		return nil
	}
	set, err := calculate.Enrich(series, b.params)
	if err != nil {
		// InvalidInput from well-formed fetched data means a broken
		// call site; surface it loudly instead of papering over.
		b.logger.Error().Err(err).Str("symbol", symbol).Msg("indicator computation failed")
		return nil
	}
	return &model.ChartData{Series: series, Indicators: set}
}

func (b *Builder) featuredCharts(ctx context.Context) []model.FeaturedChart {
	charts := make([]model.FeaturedChart, len(b.cfg.Charts.Featured))
	var wg sync.WaitGroup
	for i, symbol := range b.cfg.Charts.Featured {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			charts[i] = model.FeaturedChart{
				Symbol: symbol,
				Chart:  b.chart(ctx, symbol, b.cfg.Lookback.ShortDays),
			}
		}(i, symbol)
	}
	wg.Wait()
	return charts
}

// sectorReturns computes the short-window percent return for each
// sector ETF and orders the result descending, ties broken by symbol.
func (b *Builder) sectorReturns(ctx context.Context) []model.SectorReturn {
	results := make([]*model.SectorReturn, len(b.cfg.Sectors))
	var wg sync.WaitGroup
	for i, s := range b.cfg.Sectors {
		wg.Add(1)
		go func(i int, s config.Symbol) {
			defer wg.Done()
			series, err := b.fetcher.History(ctx, s.Ticker, b.cfg.Lookback.ShortDays)
			if err != nil {
				b.logger.Warn().Err(err).Str("symbol", s.Ticker).Msg("sector fetch failed, omitting")
				return
			}
			if series.Len() < 2 || series.FirstClose() == 0 {
				b.logger.Warn().Str("symbol", s.Ticker).Msg("sector history too short, omitting")
				return
			}
			results[i] = &model.SectorReturn{
				Name:      s.Name,
				Symbol:    s.Ticker,
				ReturnPct: (series.LastClose() - series.FirstClose()) / series.FirstClose() * 100,
			}
		}(i, s)
	}
	wg.Wait()

	sectors := make([]model.SectorReturn, 0, len(results))
	for _, r := range results {
		if r != nil {
			sectors = append(sectors, *r)
		}
	}
	sort.SliceStable(sectors, func(i, j int) bool {
		if sectors[i].ReturnPct != sectors[j].ReturnPct {
			return sectors[i].ReturnPct > sectors[j].ReturnPct
		}
		return sectors[i].Symbol < sectors[j].Symbol
	})
	return sectors
}

// rankScorecards orders the successfully quoted scorecards descending
// by daily percent change, ties broken by symbol.
func rankScorecards(cards []model.Scorecard) []model.Scorecard {
	ranked := make([]model.Scorecard, 0, len(cards))
	for _, c := range cards {
		if c.Quote != nil {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Quote.ChangePct != ranked[j].Quote.ChangePct {
			return ranked[i].Quote.ChangePct > ranked[j].Quote.ChangePct
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})
	return ranked
}
