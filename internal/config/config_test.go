package config

import (
	"os"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadAndValidate(t *testing.T) {
	content := `
watchlist:
  Apple: AAPL
  Tesla: TSLA

indices:
  S&P 500: ^GSPC

lookback:
  long_days: 200
  short_days: 60

output:
  path: out/dash.png

log_level: debug
`
	cfg, err := Load(writeTempConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Watchlist) != 2 {
		t.Fatalf("expected 2 watchlist symbols, got %d", len(cfg.Watchlist))
	}
	if cfg.Watchlist[0].Name != "Apple" || cfg.Watchlist[0].Ticker != "AAPL" {
		t.Errorf("unexpected first watchlist entry: %+v", cfg.Watchlist[0])
	}
	if cfg.Watchlist[1].Name != "Tesla" {
		t.Error("watchlist must preserve document order")
	}
	if cfg.Lookback.LongDays != 200 || cfg.Lookback.ShortDays != 60 {
		t.Errorf("unexpected lookback: %+v", cfg.Lookback)
	}
	if cfg.Output.Path != "out/dash.png" {
		t.Errorf("unexpected output path: %s", cfg.Output.Path)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level: %s", cfg.LogLevel)
	}

	// Unset sections fall back to defaults.
	if len(cfg.Sectors) != 8 {
		t.Errorf("expected default sector list, got %d entries", len(cfg.Sectors))
	}
	if cfg.Charts.Benchmark != "SPY" {
		t.Errorf("expected default benchmark, got %s", cfg.Charts.Benchmark)
	}
	if cfg.Palette.Background != "#0d1117" {
		t.Errorf("expected default palette, got %s", cfg.Palette.Background)
	}
	if cfg.Indicators.RSIPeriod != 14 || cfg.Indicators.BBStdDev != 2.0 {
		t.Errorf("expected default indicator windows, got %+v", cfg.Indicators)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Watchlist) != 8 {
		t.Errorf("expected default watchlist of 8, got %d", len(cfg.Watchlist))
	}
	if cfg.Output.Path != "stock_dashboard.png" {
		t.Errorf("unexpected default output path: %s", cfg.Output.Path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_OUTPUT", "/tmp/override.png")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Path != "/tmp/override.png" {
		t.Errorf("env override ignored: %s", cfg.Output.Path)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env override ignored: %s", cfg.LogLevel)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "empty ticker",
			mutate:  func(c *Config) { c.Watchlist[0].Ticker = "" },
			wantErr: "empty ticker",
		},
		{
			name:    "bad palette color",
			mutate:  func(c *Config) { c.Palette.Bullish = "green" },
			wantErr: "not a #rrggbb color",
		},
		{
			name:    "negative lookback",
			mutate:  func(c *Config) { c.Lookback.ShortDays = -1 },
			wantErr: "lookback",
		},
		{
			name:    "telegram enabled without token",
			mutate:  func(c *Config) { c.Telegram.Enabled = true },
			wantErr: "bot_token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
