package calculate

import (
	"fmt"
	"math"

	"github.com/Alias1177/Dashboard/internal/model"
)

// MACD computes the MACD line (fast EMA minus slow EMA), its signal
// line (an EMA of the MACD line) and the histogram (MACD minus
// signal). The MACD line is defined from index slow-1 on, the signal
// and histogram from index slow-1+signal-1 on; earlier values are NaN.
func MACD(prices []float64, fast, slow, signal int) (macd, sig, hist []float64, err error) {
	if fast >= slow {
		return nil, nil, nil, fmt.Errorf("%w: fast period %d must be below slow period %d",
			model.ErrInvalidInput, fast, slow)
	}
	if err := validate(prices, signal); err != nil {
		return nil, nil, nil, err
	}

	fastEMA, err := EMA(prices, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	slowEMA, err := EMA(prices, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	n := len(prices)
	macd = nanSlice(n)
	sig = nanSlice(n)
	hist = nanSlice(n)
	if n < slow {
		return macd, sig, hist, nil
	}

	for i := slow - 1; i < n; i++ {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line is seeded on the defined region of the MACD line.
	sigTail, err := EMA(macd[slow-1:], signal)
	if err != nil {
		return nil, nil, nil, err
	}
	for i, v := range sigTail {
		sig[slow-1+i] = v
	}

	for i := range hist {
		if !math.IsNaN(macd[i]) && !math.IsNaN(sig[i]) {
			hist[i] = macd[i] - sig[i]
		}
	}
	return macd, sig, hist, nil
}
