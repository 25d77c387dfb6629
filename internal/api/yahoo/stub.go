package yahoo

import (
	"context"

	"github.com/Alias1177/Dashboard/internal/model"
)

// StubFetcher serves canned series keyed by symbol, for tests and
// offline runs.
type StubFetcher struct {
	Series map[string][]model.Bar
	Errs   map[string]error
}

func (s *StubFetcher) lookup(symbol string, days int) (*model.PriceSeries, error) {
	if err, ok := s.Errs[symbol]; ok {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	bars, ok := s.Series[symbol]
	if !ok {
		return nil, &model.FetchError{Symbol: symbol, Err: model.ErrMissingData}
	}
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	out := make([]model.Bar, len(bars))
	copy(out, bars)
	return &model.PriceSeries{Symbol: symbol, Bars: out}, nil
}

// History returns the trailing days bars of the canned series.
func (s *StubFetcher) History(_ context.Context, symbol string, days int) (*model.PriceSeries, error) {
	return s.lookup(symbol, days)
}

// Latest returns the full canned series; callers only read the tail.
func (s *StubFetcher) Latest(_ context.Context, symbol string) (*model.PriceSeries, error) {
	return s.lookup(symbol, 0)
}
