package aggregate

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Alias1177/Dashboard/internal/api/yahoo"
	"github.com/Alias1177/Dashboard/internal/config"
	"github.com/Alias1177/Dashboard/internal/model"
)

func rampBars(n int, start, step float64) []model.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		p := start + float64(i)*step
		bars[i] = model.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   p - 0.5,
			High:   p + 1,
			Low:    p - 1,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	return cfg
}

func fullStub(cfg *config.Config) *yahoo.StubFetcher {
	stub := &yahoo.StubFetcher{
		Series: map[string][]model.Bar{},
		Errs:   map[string]error{},
	}
	step := 0.1
	for _, list := range []config.SymbolList{cfg.Watchlist, cfg.Indices, cfg.Sectors} {
		for _, s := range list {
			stub.Series[s.Ticker] = rampBars(100, 100, step)
			step += 0.05
		}
	}
	stub.Series[cfg.Charts.Benchmark] = rampBars(300, 400, 0.2)
	for _, s := range cfg.Charts.Featured {
		if _, ok := stub.Series[s]; !ok {
			stub.Series[s] = rampBars(100, 150, 0.3)
		}
	}
	return stub
}

func TestBuildComplete(t *testing.T) {
	cfg := testConfig(t)
	stub := fullStub(cfg)

	m, err := New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(m.Indices) != len(cfg.Indices) {
		t.Errorf("expected %d index scorecards, got %d", len(cfg.Indices), len(m.Indices))
	}
	if len(m.Watchlist) != len(cfg.Watchlist) {
		t.Errorf("expected %d watchlist scorecards, got %d", len(cfg.Watchlist), len(m.Watchlist))
	}
	for _, c := range m.Watchlist {
		if c.Quote == nil {
			t.Errorf("scorecard %s missing quote", c.Symbol)
		}
	}
	if m.Benchmark == nil {
		t.Fatal("missing benchmark chart")
	}
	if m.Benchmark.Series.Len() != 300 {
		t.Errorf("benchmark series length = %d, want 300", m.Benchmark.Series.Len())
	}
	if len(m.Benchmark.Indicators.MA20) != m.Benchmark.Series.Len() {
		t.Error("benchmark indicators not aligned with series")
	}
	if len(m.Featured) != len(cfg.Charts.Featured) {
		t.Errorf("expected %d featured charts, got %d", len(cfg.Charts.Featured), len(m.Featured))
	}
	if len(m.Sectors) != len(cfg.Sectors) {
		t.Errorf("expected %d sector returns, got %d", len(cfg.Sectors), len(m.Sectors))
	}
}

func TestBuildPartialFailure(t *testing.T) {
	// 7 of 8 watchlist tickers succeed; the eighth must become a
	// placeholder without dragging anything else down.
	cfg := testConfig(t)
	stub := fullStub(cfg)
	failed := cfg.Watchlist[3].Ticker
	delete(stub.Series, failed)
	stub.Errs[failed] = fmt.Errorf("connection reset")

	m, err := New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	populated := 0
	for _, c := range m.Watchlist {
		if c.Symbol == failed {
			if c.Quote != nil {
				t.Error("failed symbol must have a nil quote")
			}
			continue
		}
		if c.Quote == nil {
			t.Errorf("healthy symbol %s lost its quote", c.Symbol)
			continue
		}
		populated++
	}
	if populated != 7 {
		t.Errorf("expected 7 populated scorecards, got %d", populated)
	}
	for _, c := range m.WatchlistRanked {
		if c.Symbol == failed {
			t.Error("failed symbol must not appear in the ranked list")
		}
	}
	if len(m.WatchlistRanked) != 7 {
		t.Errorf("ranked list length = %d, want 7", len(m.WatchlistRanked))
	}
}

func TestScorecardMissingData(t *testing.T) {
	cfg := testConfig(t)
	stub := fullStub(cfg)
	short := cfg.Watchlist[0].Ticker
	stub.Series[short] = rampBars(1, 100, 0)

	m, err := New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, c := range m.Watchlist {
		if c.Symbol == short && c.Quote != nil {
			t.Error("single-bar symbol must render as placeholder")
		}
	}
}

func TestBuildTotalFailure(t *testing.T) {
	cfg := testConfig(t)
	stub := &yahoo.StubFetcher{
		Series: map[string][]model.Bar{},
		Errs:   map[string]error{},
	}

	if _, err := New(stub, cfg).Build(context.Background()); err == nil {
		t.Fatal("expected error when no symbol produced data")
	}
}

func TestSectorRankingOrder(t *testing.T) {
	cfg := testConfig(t)
	stub := fullStub(cfg)
	// Two sectors with identical flat series force a percent-change tie.
	flat := rampBars(50, 100, 0)
	stub.Series[cfg.Sectors[0].Ticker] = flat
	stub.Series[cfg.Sectors[1].Ticker] = flat

	m, err := New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 1; i < len(m.Sectors); i++ {
		prev, cur := m.Sectors[i-1], m.Sectors[i]
		if cur.ReturnPct > prev.ReturnPct {
			t.Errorf("sectors not descending at %d: %v before %v", i, prev.ReturnPct, cur.ReturnPct)
		}
		if cur.ReturnPct == prev.ReturnPct && cur.Symbol < prev.Symbol {
			t.Errorf("tie at %d not broken lexically: %s before %s", i, prev.Symbol, cur.Symbol)
		}
	}
}

func TestWatchlistRankingDescending(t *testing.T) {
	cfg := testConfig(t)
	stub := fullStub(cfg)

	m, err := New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := 1; i < len(m.WatchlistRanked); i++ {
		if m.WatchlistRanked[i].Quote.ChangePct > m.WatchlistRanked[i-1].Quote.ChangePct {
			t.Errorf("ranked watchlist not descending at %d", i)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := testConfig(t)
	stub := fullStub(cfg)
	builder := New(stub, cfg)

	first, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	a := first.Benchmark.Indicators
	b := second.Benchmark.Indicators
	for _, pair := range [][2][]float64{
		{a.MA20, b.MA20}, {a.MACD, b.MACD}, {a.RSI, b.RSI}, {a.BBUpper, b.BBUpper},
	} {
		for i := range pair[0] {
			x, y := pair[0][i], pair[1][i]
			if math.IsNaN(x) && math.IsNaN(y) {
				continue
			}
			if x != y {
				t.Fatalf("indicator rerun diverged at index %d: %v != %v", i, x, y)
			}
		}
	}
	for i := range first.WatchlistRanked {
		if first.WatchlistRanked[i].Symbol != second.WatchlistRanked[i].Symbol {
			t.Fatal("ranking order diverged across reruns")
		}
	}
}
