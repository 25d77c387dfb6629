// Package render lays the dashboard model out as a fixed grid of
// panels and writes it to a single PNG. Missing data never fails a
// render: any panel whose input is absent becomes a placeholder.
package render

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Alias1177/Dashboard/internal/config"
	"github.com/Alias1177/Dashboard/internal/model"
)

// Renderer draws dashboard models at a fixed size and palette.
type Renderer struct {
	theme  Theme
	width  vg.Length
	height vg.Length
	dpi    int
	logger zerolog.Logger
}

// New creates a Renderer from the output and palette configuration.
func New(cfg *config.Config) (*Renderer, error) {
	theme, err := themeFromPalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("resolve palette: %w", err)
	}
	dpi := cfg.Output.DPI
	return &Renderer{
		theme:  theme,
		width:  vg.Inch * vg.Length(cfg.Output.WidthPx) / vg.Length(dpi),
		height: vg.Inch * vg.Length(cfg.Output.HeightPx) / vg.Length(dpi),
		dpi:    dpi,
		logger: log.With().Str("component", "renderer").Logger(),
	}, nil
}

// Render draws the model and writes the PNG to path. Only canvas or
// file errors are fatal; empty panel data degrades to placeholders.
func (r *Renderer) Render(m *model.DashboardModel, path string) error {
	img := vgimg.NewWith(
		vgimg.UseWH(r.width, r.height),
		vgimg.UseDPI(r.dpi),
	)
	dc := draw.New(img)
	fill(dc, r.theme.Background)

	title := fmt.Sprintf("STOCK MARKET DASHBOARD  |  %s",
		m.GeneratedAt.Format("January 02, 2006  15:04"))
	if err := r.titlePanel(titleBand(dc), title); err != nil {
		return fmt.Errorf("draw title: %w", err)
	}

	if err := r.drawPanels(body(dc), m); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	r.logger.Info().Str("path", path).Msg("dashboard written")
	return nil
}

func (r *Renderer) titlePanel(dc draw.Canvas, title string) error {
	p := r.newPanel("")
	p.BackgroundColor = r.theme.Background
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	if err := addLabel(p, 0.5, 0.5, title, r.theme.Text, vg.Points(13)); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

func (r *Renderer) drawPanels(dc draw.Canvas, m *model.DashboardModel) error {
	// Left column: benchmark price, RSI, MACD.
	benchTitle := "Benchmark - 1 Year"
	if m.Benchmark != nil {
		benchTitle = fmt.Sprintf("%s - 1 Year", m.Benchmark.Series.Symbol)
	}
	if err := r.pricePanel(cell(dc, 0, 0, 3, 1), benchTitle, m.Benchmark); err != nil {
		return fmt.Errorf("benchmark panel: %w", err)
	}
	if err := r.rsiPanel(cell(dc, 0, 1, 3, 2), m.Benchmark); err != nil {
		return fmt.Errorf("rsi panel: %w", err)
	}
	if err := r.macdPanel(cell(dc, 0, 2, 3, 3), m.Benchmark); err != nil {
		return fmt.Errorf("macd panel: %w", err)
	}

	// Index scorecards across the top right.
	for i := 0; i < 4; i++ {
		var card model.Scorecard
		if i < len(m.Indices) {
			card = m.Indices[i]
		}
		if err := r.scorecardPanel(cell(dc, 3+i, 0, 4+i, 1), card); err != nil {
			return fmt.Errorf("index scorecard %d: %w", i, err)
		}
	}

	// Watchlist scorecards, two rows of four.
	for i := 0; i < 8; i++ {
		var card model.Scorecard
		if i < len(m.Watchlist) {
			card = m.Watchlist[i]
		}
		col := 4 + i%4
		row := 1 + i/4
		if err := r.scorecardPanel(cell(dc, col, row, col+1, row+1), card); err != nil {
			return fmt.Errorf("watchlist scorecard %d: %w", i, err)
		}
	}

	// Sector performance bars.
	sectorNames := make([]string, len(m.Sectors))
	sectorVals := make([]float64, len(m.Sectors))
	for i, s := range m.Sectors {
		sectorNames[i] = s.Name
		sectorVals[i] = s.ReturnPct
	}
	if err := r.barPanel(cell(dc, 0, 3, 4, 4), "Sector Performance - 3 Months (%)", sectorNames, sectorVals); err != nil {
		return fmt.Errorf("sector panel: %w", err)
	}

	// Two compact featured charts beside the sector bars.
	for i := 0; i < 2; i++ {
		var fc model.FeaturedChart
		if i < len(m.Featured) {
			fc = m.Featured[i]
		}
		if err := r.miniChartPanel(cell(dc, 4+i*2, 3, 6+i*2, 4), fc.Symbol, fc.Chart); err != nil {
			return fmt.Errorf("mini chart %d: %w", i, err)
		}
	}

	// Bottom row: the remaining featured chart, full width on the
	// left, and the ranked watchlist bars on the right.
	var last model.FeaturedChart
	if len(m.Featured) > 2 {
		last = m.Featured[2]
	}
	if err := r.miniChartPanel(cell(dc, 0, 4, 4, 5), last.Symbol, last.Chart); err != nil {
		return fmt.Errorf("featured chart: %w", err)
	}

	rankedNames := make([]string, len(m.WatchlistRanked))
	rankedVals := make([]float64, len(m.WatchlistRanked))
	for i, c := range m.WatchlistRanked {
		rankedNames[i] = c.Name
		rankedVals[i] = c.Quote.ChangePct
	}
	if err := r.barPanel(cell(dc, 4, 4, 8, 5), "Watchlist Daily Change (%)", rankedNames, rankedVals); err != nil {
		return fmt.Errorf("watchlist panel: %w", err)
	}
	return nil
}
