package render

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Alias1177/Dashboard/internal/aggregate"
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

func buildModel(t *testing.T, cfg *config.Config, breakSymbol string) *model.DashboardModel {
	t.Helper()
	stub := &yahoo.StubFetcher{
		Series: map[string][]model.Bar{},
		Errs:   map[string]error{},
	}
	step := -0.2
	for _, list := range []config.SymbolList{cfg.Watchlist, cfg.Indices, cfg.Sectors} {
		for _, s := range list {
			stub.Series[s.Ticker] = rampBars(100, 100, step)
			step += 0.1
		}
	}
	stub.Series[cfg.Charts.Benchmark] = rampBars(300, 400, 0.2)
	for _, s := range cfg.Charts.Featured {
		if _, ok := stub.Series[s]; !ok {
			stub.Series[s] = rampBars(100, 150, 0.3)
		}
	}
	if breakSymbol != "" {
		delete(stub.Series, breakSymbol)
		stub.Errs[breakSymbol] = os.ErrDeadlineExceeded
	}

	m, err := aggregate.New(stub, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return m
}

func decodePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output image missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("decoded image is empty")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	// Keep test renders small.
	cfg.Output.WidthPx = 800
	cfg.Output.HeightPx = 600
	cfg.Output.DPI = 72
	return cfg
}

func TestRenderFullModel(t *testing.T) {
	cfg := testConfig(t)
	m := buildModel(t, cfg, "")

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dashboard.png")
	if err := r.Render(m, path); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	decodePNG(t, path)
}

func TestRenderWithFailedSymbol(t *testing.T) {
	cfg := testConfig(t)
	m := buildModel(t, cfg, cfg.Watchlist[2].Ticker)

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dashboard.png")
	if err := r.Render(m, path); err != nil {
		t.Fatalf("Render must tolerate placeholder scorecards: %v", err)
	}
	decodePNG(t, path)
}

func TestRenderSparseModel(t *testing.T) {
	// A model with nothing but one scorecard still renders: every
	// other panel becomes a placeholder.
	cfg := testConfig(t)
	m := &model.DashboardModel{
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Watchlist: []model.Scorecard{
			{Name: "Apple", Symbol: "AAPL", Quote: &model.Quote{
				Symbol: "AAPL", Price: 191.2, Change: 1.3, ChangePct: 0.68,
			}},
		},
	}

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dashboard.png")
	if err := r.Render(m, path); err != nil {
		t.Fatalf("Render failed on sparse model: %v", err)
	}
	decodePNG(t, path)
}

func TestRenderBadOutputPath(t *testing.T) {
	cfg := testConfig(t)
	m := buildModel(t, cfg, "")

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Render(m, filepath.Join(t.TempDir(), "missing-dir", "out.png")); err == nil {
		t.Fatal("expected error for unwritable output path")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"#2ca02c", false},
		{"#000000", false},
		{"2ca02c", true},
		{"#2ca02", true},
		{"#zzzzzz", true},
	}
	for _, tt := range tests {
		if _, err := parseHexColor(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("parseHexColor(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
		}
	}
}
