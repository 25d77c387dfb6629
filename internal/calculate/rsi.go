package calculate

// RSI computes the Relative Strength Index using Wilder's smoothing:
// the first average gain/loss is a simple mean over the first period
// deltas, subsequent averages are (prev*(period-1)+current)/period.
// Values are defined for i >= period and always lie in [0, 100]; an
// average loss of zero maps to RSI 100.
func RSI(prices []float64, period int) ([]float64, error) {
	if err := validate(prices, period); err != nil {
		return nil, err
	}
	out := nanSlice(len(prices))
	if len(prices) < period+1 {
		return out, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}
