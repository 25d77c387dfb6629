package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Alias1177/Dashboard/internal/model"
)

// newPanel creates an empty chart panel styled for the dark theme.
func (r *Renderer) newPanel(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Color = r.theme.Text
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.BackgroundColor = r.theme.Panel

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = r.theme.Frame
		ax.Tick.LineStyle.Color = r.theme.Frame
		ax.Tick.Label.Color = r.theme.Muted
		ax.Tick.Label.Font.Size = vg.Points(7)
		ax.Label.TextStyle.Color = r.theme.Muted
	}

	p.Legend.TextStyle.Color = r.theme.Text
	p.Legend.TextStyle.Font.Size = vg.Points(7)
	p.Legend.Top = true
	return p
}

// timePanel is newPanel with date ticks on the X axis.
func (r *Renderer) timePanel(title string) *plot.Plot {
	p := r.newPanel(title)
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan '06"}
	return p
}

// timeXYs pairs bar timestamps with values, dropping undefined
// (NaN) points so warm-up regions simply do not plot.
func timeXYs(times []time.Time, vals []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(vals))
	for i := range vals {
		if math.IsNaN(vals[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(times[i].Unix()), Y: vals[i]})
	}
	return xys
}

// addLine plots one series; empty input adds nothing.
func addLine(p *plot.Plot, xys plotter.XYs, col color.Color, width vg.Length, dashed bool, label string) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = col
	l.Width = width
	if dashed {
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

// addHLine draws a horizontal guide across the data extent.
func addHLine(p *plot.Plot, x0, x1, y float64, col color.Color) error {
	return addLine(p, plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}}, col, vg.Points(0.7), true, "")
}

// addLabel places one text label at data coordinates.
func addLabel(p *plot.Plot, x, y float64, s string, col color.Color, size vg.Length) error {
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{s},
	})
	if err != nil {
		return err
	}
	lbl.TextStyle[0].Color = col
	lbl.TextStyle[0].Font.Size = size
	lbl.TextStyle[0].XAlign = draw.XCenter
	lbl.TextStyle[0].YAlign = draw.YCenter
	p.Add(lbl)
	return nil
}

// placeholderPanel renders an N/A card where data is missing.
func (r *Renderer) placeholderPanel(dc draw.Canvas, title string) error {
	p := r.newPanel(title)
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	if err := addLabel(p, 0.5, 0.5, "N/A", r.theme.Muted, vg.Points(10)); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

// pricePanel draws close, moving averages and Bollinger envelope for
// the benchmark.
func (r *Renderer) pricePanel(dc draw.Canvas, title string, chart *model.ChartData) error {
	if chart == nil || chart.Series.Len() == 0 {
		return r.placeholderPanel(dc, title)
	}
	p := r.timePanel(title)
	times := chart.Series.Times()
	ind := chart.Indicators

	if err := addLine(p, timeXYs(times, chart.Series.Closes()), r.theme.Neutral, vg.Points(1.5), false, "Close"); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.MA20), r.theme.Accent, vg.Points(0.8), true, "MA20"); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.MA50), r.theme.Bearish, vg.Points(0.8), true, "MA50"); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.BBUpper), r.theme.Muted, vg.Points(0.5), false, ""); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.BBLower), r.theme.Muted, vg.Points(0.5), false, ""); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

// rsiPanel draws the oscillator with overbought/oversold guides.
func (r *Renderer) rsiPanel(dc draw.Canvas, chart *model.ChartData) error {
	const title = "RSI (14)"
	if chart == nil || chart.Series.Len() == 0 {
		return r.placeholderPanel(dc, title)
	}
	p := r.timePanel(title)
	times := chart.Series.Times()

	xys := timeXYs(times, chart.Indicators.RSI)
	if len(xys) == 0 {
		return r.placeholderPanel(dc, title)
	}
	if err := addLine(p, xys, r.theme.Accent, vg.Points(1), false, ""); err != nil {
		return err
	}
	x0 := float64(times[0].Unix())
	x1 := float64(times[len(times)-1].Unix())
	if err := addHLine(p, x0, x1, 70, r.theme.Bearish); err != nil {
		return err
	}
	if err := addHLine(p, x0, x1, 30, r.theme.Bullish); err != nil {
		return err
	}
	p.Y.Min, p.Y.Max = 0, 100
	p.Draw(dc)
	return nil
}

// macdPanel draws the MACD and signal lines over the histogram. Each
// defined histogram value becomes one thin vertical segment colored by
// sign.
func (r *Renderer) macdPanel(dc draw.Canvas, chart *model.ChartData) error {
	const title = "MACD"
	if chart == nil || chart.Series.Len() == 0 {
		return r.placeholderPanel(dc, title)
	}
	p := r.timePanel(title)
	times := chart.Series.Times()
	ind := chart.Indicators

	for i, v := range ind.Histogram {
		if math.IsNaN(v) {
			continue
		}
		col := r.theme.Bullish
		if v < 0 {
			col = r.theme.Bearish
		}
		x := float64(times[i].Unix())
		if err := addLine(p, plotter.XYs{{X: x, Y: 0}, {X: x, Y: v}}, col, vg.Points(1), false, ""); err != nil {
			return err
		}
	}
	if err := addLine(p, timeXYs(times, ind.MACD), r.theme.Neutral, vg.Points(1), false, "MACD"); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.Signal), r.theme.Bearish, vg.Points(0.8), true, "Signal"); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

// miniChartPanel draws a compact close + MA20 + Bollinger chart, line
// colored by the window's direction.
func (r *Renderer) miniChartPanel(dc draw.Canvas, symbol string, chart *model.ChartData) error {
	title := fmt.Sprintf("%s - 3M", symbol)
	if chart == nil || chart.Series.Len() == 0 {
		return r.placeholderPanel(dc, title)
	}
	p := r.timePanel(title)
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan"}
	times := chart.Series.Times()
	ind := chart.Indicators

	col := r.theme.Bullish
	if chart.Series.LastClose() < chart.Series.FirstClose() {
		col = r.theme.Bearish
	}
	if err := addLine(p, timeXYs(times, chart.Series.Closes()), col, vg.Points(1.5), false, ""); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.MA20), r.theme.Accent, vg.Points(0.8), true, ""); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.BBUpper), r.theme.Muted, vg.Points(0.5), false, ""); err != nil {
		return err
	}
	if err := addLine(p, timeXYs(times, ind.BBLower), r.theme.Muted, vg.Points(0.5), false, ""); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

// scorecardPanel draws a compact name / price / daily-change card.
func (r *Renderer) scorecardPanel(dc draw.Canvas, card model.Scorecard) error {
	p := r.newPanel("")
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	if card.Quote == nil {
		if err := addLabel(p, 0.5, 0.5, "N/A", r.theme.Muted, vg.Points(10)); err != nil {
			return err
		}
		if err := addLabel(p, 0.5, 0.8, card.Name, r.theme.Muted, vg.Points(7)); err != nil {
			return err
		}
		p.Draw(dc)
		return nil
	}

	col := r.theme.Bullish
	if card.Quote.Change < 0 {
		col = r.theme.Bearish
	}
	if err := addLabel(p, 0.5, 0.8, card.Name, r.theme.Muted, vg.Points(7)); err != nil {
		return err
	}
	price := fmt.Sprintf("$%.2f", card.Quote.Price)
	if err := addLabel(p, 0.5, 0.52, price, r.theme.Text, vg.Points(11)); err != nil {
		return err
	}
	change := fmt.Sprintf("%+.2f%%", card.Quote.ChangePct)
	if err := addLabel(p, 0.5, 0.24, change, col, vg.Points(9)); err != nil {
		return err
	}
	p.Draw(dc)
	return nil
}

// barPanel draws a horizontal bar chart of percent values, best at the
// top, with a value label beside each bar.
func (r *Renderer) barPanel(dc draw.Canvas, title string, names []string, values []float64) error {
	if len(values) == 0 {
		return r.placeholderPanel(dc, title)
	}
	p := r.newPanel(title)

	// NominalY lays entries out bottom to top; reverse so the ranked
	// lists read top-down.
	n := len(values)
	revNames := make([]string, n)
	gains := make(plotter.Values, n)
	losses := make(plotter.Values, n)
	for i := 0; i < n; i++ {
		j := n - 1 - i
		revNames[i] = names[j]
		if values[j] >= 0 {
			gains[i] = values[j]
		} else {
			losses[i] = values[j]
		}
	}

	barWidth := vg.Points(8)
	up, err := plotter.NewBarChart(gains, barWidth)
	if err != nil {
		return err
	}
	up.Horizontal = true
	up.Color = r.theme.Bullish
	up.LineStyle.Width = 0

	down, err := plotter.NewBarChart(losses, barWidth)
	if err != nil {
		return err
	}
	down.Horizontal = true
	down.Color = r.theme.Bearish
	down.LineStyle.Width = 0

	p.Add(up, down)
	p.NominalY(revNames...)

	for i := 0; i < n; i++ {
		v := gains[i] + losses[i]
		if err := addLabel(p, v, float64(i), fmt.Sprintf("%+.1f%%", v), r.theme.Text, vg.Points(7)); err != nil {
			return err
		}
	}
	p.Draw(dc)
	return nil
}
