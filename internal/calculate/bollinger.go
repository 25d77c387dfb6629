package calculate

import "math"

// Bollinger computes Bollinger Bands: the middle band is the
// period-length SMA, the upper and lower bands sit stdDev population
// standard deviations above and below it over the same trailing
// window. All three are NaN inside the warm-up window.
func Bollinger(prices []float64, period int, stdDev float64) (mid, upper, lower []float64, err error) {
	if err := validate(prices, period); err != nil {
		return nil, nil, nil, err
	}

	n := len(prices)
	mid = nanSlice(n)
	upper = nanSlice(n)
	lower = nanSlice(n)
	if n < period {
		return mid, upper, lower, nil
	}

	sma, err := SMA(prices, period)
	if err != nil {
		return nil, nil, nil, err
	}

	for i := period - 1; i < n; i++ {
		m := sma[i]
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := prices[j] - m
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))
		mid[i] = m
		upper[i] = m + stdDev*sd
		lower[i] = m - stdDev*sd
	}
	return mid, upper, lower, nil
}
