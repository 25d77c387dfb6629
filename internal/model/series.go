package model

import "time"

// Bar represents a single OHLCV price bar.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// PriceSeries is an ordered run of bars for one symbol, oldest first.
// Timestamps are strictly increasing; the series is never mutated after
// it has been fetched.
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes extracts the close prices, oldest first.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the traded volumes, oldest first.
func (s *PriceSeries) Volumes() []float64 {
	volumes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		volumes[i] = b.Volume
	}
	return volumes
}

// Times extracts the bar timestamps, oldest first.
func (s *PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		times[i] = b.Time
	}
	return times
}

// FirstClose returns the oldest close, or 0 for an empty series.
func (s *PriceSeries) FirstClose() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Bars[0].Close
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}
