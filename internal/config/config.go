package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Symbol pairs a display name with a provider ticker.
type Symbol struct {
	Name   string
	Ticker string
}

// SymbolList preserves the document order of a YAML name-to-ticker
// mapping, so panels render in the order the user wrote.
type SymbolList []Symbol

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *SymbolList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a name-to-ticker mapping, got %s", value.Tag)
	}
	out := make(SymbolList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		out = append(out, Symbol{
			Name:   value.Content[i].Value,
			Ticker: value.Content[i+1].Value,
		})
	}
	*l = out
	return nil
}

// Palette maps display roles to hex colors.
type Palette struct {
	Bullish    string `yaml:"bullish"`
	Bearish    string `yaml:"bearish"`
	Neutral    string `yaml:"neutral"`
	Accent     string `yaml:"accent"`
	Muted      string `yaml:"muted"`
	Background string `yaml:"background"`
	Panel      string `yaml:"panel"`
	Text       string `yaml:"text"`
}

// Config holds all application configuration.
type Config struct {
	Watchlist SymbolList `yaml:"watchlist"`
	Indices   SymbolList `yaml:"indices"`
	Sectors   SymbolList `yaml:"sectors"`
	Charts    struct {
		Benchmark string   `yaml:"benchmark"`
		Featured  []string `yaml:"featured"`
	} `yaml:"charts"`
	Lookback struct {
		LongDays  int `yaml:"long_days"`
		ShortDays int `yaml:"short_days"`
	} `yaml:"lookback"`
	Indicators struct {
		MAFast       int     `yaml:"ma_fast"`
		MASlow       int     `yaml:"ma_slow"`
		MACDFast     int     `yaml:"macd_fast"`
		MACDSlow     int     `yaml:"macd_slow"`
		MACDSignal   int     `yaml:"macd_signal"`
		RSIPeriod    int     `yaml:"rsi_period"`
		BBPeriod     int     `yaml:"bb_period"`
		BBStdDev     float64 `yaml:"bb_std_dev"`
		VolumePeriod int     `yaml:"volume_period"`
	} `yaml:"indicators"`
	Palette Palette `yaml:"palette"`
	Output  struct {
		Path     string `yaml:"path"`
		WidthPx  int    `yaml:"width_px"`
		HeightPx int    `yaml:"height_px"`
		DPI      int    `yaml:"dpi"`
	} `yaml:"output"`
	Fetch struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSec     int    `yaml:"timeout_sec"`
		RequestsPerSec int    `yaml:"requests_per_sec"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"fetch"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Enabled  bool   `yaml:"enabled"`
	} `yaml:"telegram"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides and defaults. A missing file is not an error: the
// built-in defaults describe a complete dashboard.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DASHBOARD_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.TimeoutSec = sec
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Watchlist) == 0 {
		c.Watchlist = SymbolList{
			{"Apple", "AAPL"}, {"Microsoft", "MSFT"}, {"NVIDIA", "NVDA"},
			{"Amazon", "AMZN"}, {"Google", "GOOGL"}, {"Tesla", "TSLA"},
			{"Meta", "META"}, {"Netflix", "NFLX"},
		}
	}
	if len(c.Indices) == 0 {
		c.Indices = SymbolList{
			{"S&P 500", "^GSPC"}, {"NASDAQ", "^IXIC"},
			{"Dow Jones", "^DJI"}, {"VIX", "^VIX"},
		}
	}
	if len(c.Sectors) == 0 {
		c.Sectors = SymbolList{
			{"Technology", "XLK"}, {"Healthcare", "XLV"},
			{"Financials", "XLF"}, {"Energy", "XLE"},
			{"Consumer", "XLY"}, {"Industrials", "XLI"},
			{"Utilities", "XLU"}, {"Real Estate", "XLRE"},
		}
	}
	if c.Charts.Benchmark == "" {
		c.Charts.Benchmark = "SPY"
	}
	if len(c.Charts.Featured) == 0 {
		c.Charts.Featured = []string{"AAPL", "TSLA", "NVDA"}
	}
	if c.Lookback.LongDays == 0 {
		c.Lookback.LongDays = 365
	}
	if c.Lookback.ShortDays == 0 {
		c.Lookback.ShortDays = 90
	}

	ind := &c.Indicators
	if ind.MAFast == 0 {
		ind.MAFast = 20
	}
	if ind.MASlow == 0 {
		ind.MASlow = 50
	}
	if ind.MACDFast == 0 {
		ind.MACDFast = 12
	}
	if ind.MACDSlow == 0 {
		ind.MACDSlow = 26
	}
	if ind.MACDSignal == 0 {
		ind.MACDSignal = 9
	}
	if ind.RSIPeriod == 0 {
		ind.RSIPeriod = 14
	}
	if ind.BBPeriod == 0 {
		ind.BBPeriod = 20
	}
	if ind.BBStdDev == 0 {
		ind.BBStdDev = 2.0
	}
	if ind.VolumePeriod == 0 {
		ind.VolumePeriod = 20
	}

	p := &c.Palette
	if p.Bullish == "" {
		p.Bullish = "#2ca02c"
	}
	if p.Bearish == "" {
		p.Bearish = "#d62728"
	}
	if p.Neutral == "" {
		p.Neutral = "#1f77b4"
	}
	if p.Accent == "" {
		p.Accent = "#ff7f0e"
	}
	if p.Muted == "" {
		p.Muted = "#8b949e"
	}
	if p.Background == "" {
		p.Background = "#0d1117"
	}
	if p.Panel == "" {
		p.Panel = "#161b22"
	}
	if p.Text == "" {
		p.Text = "#e6edf3"
	}

	if c.Output.Path == "" {
		c.Output.Path = "stock_dashboard.png"
	}
	if c.Output.WidthPx == 0 {
		c.Output.WidthPx = 2400
	}
	if c.Output.HeightPx == 0 {
		c.Output.HeightPx = 1800
	}
	if c.Output.DPI == 0 {
		c.Output.DPI = 150
	}

	if c.Fetch.TimeoutSec == 0 {
		c.Fetch.TimeoutSec = 30
	}
	if c.Fetch.RequestsPerSec == 0 {
		c.Fetch.RequestsPerSec = 5
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 3
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must contain at least one symbol")
	}
	for _, list := range []SymbolList{c.Watchlist, c.Indices, c.Sectors} {
		for _, s := range list {
			if s.Ticker == "" {
				return fmt.Errorf("symbol %q has an empty ticker", s.Name)
			}
		}
	}
	if c.Lookback.LongDays <= 0 || c.Lookback.ShortDays <= 0 {
		return fmt.Errorf("lookback windows must be positive day counts")
	}
	for role, hex := range map[string]string{
		"bullish":    c.Palette.Bullish,
		"bearish":    c.Palette.Bearish,
		"neutral":    c.Palette.Neutral,
		"accent":     c.Palette.Accent,
		"muted":      c.Palette.Muted,
		"background": c.Palette.Background,
		"panel":      c.Palette.Panel,
		"text":       c.Palette.Text,
	} {
		if !hexColorRe.MatchString(hex) {
			return fmt.Errorf("palette.%s: %q is not a #rrggbb color", role, hex)
		}
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Output.WidthPx <= 0 || c.Output.HeightPx <= 0 || c.Output.DPI <= 0 {
		return fmt.Errorf("output dimensions and dpi must be positive")
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}
