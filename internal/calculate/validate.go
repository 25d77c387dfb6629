package calculate

import (
	"fmt"
	"math"

	"github.com/Alias1177/Dashboard/internal/model"
)

// validate rejects degenerate input before any indicator math runs.
// NaN or Inf prices would otherwise poison every downstream value.
func validate(prices []float64, period int) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: empty price series", model.ErrInvalidInput)
	}
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %d", model.ErrInvalidInput, period)
	}
	for i, v := range prices {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite price at index %d", model.ErrInvalidInput, i)
		}
	}
	return nil
}

// nanSlice returns a slice of n NaN values. Indicator outputs start
// all-undefined and are filled in past the warm-up window.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
