package calculate

// SMA computes the period-length simple moving average of prices. The
// result is aligned with the input: index i holds the mean of
// prices[i-period+1..i] and is NaN for i < period-1. A series shorter
// than the period yields an all-NaN result.
func SMA(prices []float64, period int) ([]float64, error) {
	if err := validate(prices, period); err != nil {
		return nil, err
	}
	out := nanSlice(len(prices))
	if len(prices) < period {
		return out, nil
	}
	var sum float64
	for i, v := range prices {
		sum += v
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}
