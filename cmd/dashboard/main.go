package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Dashboard/internal/aggregate"
	"github.com/Alias1177/Dashboard/internal/api/yahoo"
	"github.com/Alias1177/Dashboard/internal/config"
	"github.com/Alias1177/Dashboard/internal/notify"
	"github.com/Alias1177/Dashboard/internal/render"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("DASHBOARD_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	client := yahoo.NewClient(yahoo.ClientOptions{
		BaseURL:        cfg.Fetch.BaseURL,
		RequestTimeout: time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		RequestsPerSec: cfg.Fetch.RequestsPerSec,
		MaxRetries:     cfg.Fetch.MaxRetries,
	})

	ctx := context.Background()

	log.Info().
		Int("watchlist", len(cfg.Watchlist)).
		Int("indices", len(cfg.Indices)).
		Int("sectors", len(cfg.Sectors)).
		Msg("fetching market data")

	m, err := aggregate.New(client, cfg).Build(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dashboard build failed")
	}

	renderer, err := render.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("renderer setup failed")
	}
	if err := renderer.Render(m, cfg.Output.Path); err != nil {
		log.Fatal().Err(err).Msg("dashboard render failed")
	}
	log.Info().Str("path", cfg.Output.Path).Msg("dashboard saved")

	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Warn().Err(err).Msg("telegram setup failed, skipping delivery")
			return
		}
		caption := "Market dashboard " + m.GeneratedAt.Format("2006-01-02 15:04")
		if err := tg.SendDashboard(cfg.Output.Path, caption); err != nil {
			log.Warn().Err(err).Msg("telegram delivery failed")
		}
	}
}
