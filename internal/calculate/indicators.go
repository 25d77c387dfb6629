package calculate

import (
	"fmt"

	"github.com/Alias1177/Dashboard/internal/model"
)

// Params controls the lookback windows used when enriching a series.
type Params struct {
	MAFast       int
	MASlow       int
	MACDFast     int
	MACDSlow     int
	MACDSignal   int
	RSIPeriod    int
	BBPeriod     int
	BBStdDev     float64
	VolumePeriod int
}

// DefaultParams returns the standard textbook windows.
func DefaultParams() Params {
	return Params{
		MAFast:       20,
		MASlow:       50,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		RSIPeriod:    14,
		BBPeriod:     20,
		BBStdDev:     2.0,
		VolumePeriod: 20,
	}
}

// Enrich computes the full indicator set for one price series. Every
// output slice is aligned with the input bars; indicators whose
// lookback exceeds the available history come back all-NaN rather
// than truncated.
func Enrich(series *model.PriceSeries, p Params) (*model.IndicatorSet, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty price series", model.ErrInvalidInput)
	}
	closes := series.Closes()

	ma20, err := SMA(closes, p.MAFast)
	if err != nil {
		return nil, err
	}
	ma50, err := SMA(closes, p.MASlow)
	if err != nil {
		return nil, err
	}
	ema12, err := EMA(closes, p.MACDFast)
	if err != nil {
		return nil, err
	}
	ema26, err := EMA(closes, p.MACDSlow)
	if err != nil {
		return nil, err
	}
	macd, signal, hist, err := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, err
	}
	rsi, err := RSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, err
	}
	bbMid, bbUpper, bbLower, err := Bollinger(closes, p.BBPeriod, p.BBStdDev)
	if err != nil {
		return nil, err
	}
	volumeMA, err := SMA(series.Volumes(), p.VolumePeriod)
	if err != nil {
		return nil, err
	}

	return &model.IndicatorSet{
		MA20:      ma20,
		MA50:      ma50,
		EMA12:     ema12,
		EMA26:     ema26,
		MACD:      macd,
		Signal:    signal,
		Histogram: hist,
		RSI:       rsi,
		BBMid:     bbMid,
		BBUpper:   bbUpper,
		BBLower:   bbLower,
		VolumeMA:  volumeMA,
	}, nil
}
