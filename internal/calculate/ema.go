package calculate

// EMA computes the exponential moving average of prices with smoothing
// factor 2/(period+1). The seed at index period-1 is the simple
// average of the first period values; everything before it is NaN.
func EMA(prices []float64, period int) ([]float64, error) {
	if err := validate(prices, period); err != nil {
		return nil, err
	}
	out := nanSlice(len(prices))
	if len(prices) < period {
		return out, nil
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out, nil
}
