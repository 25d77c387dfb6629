package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed or degenerate series passed to
	// an indicator. It signals a bad call site and is allowed to abort
	// the run.
	ErrInvalidInput = errors.New("invalid input series")

	// ErrMissingData marks insufficient history for a requested
	// computation. It is downgraded to a placeholder at the
	// aggregation boundary.
	ErrMissingData = errors.New("insufficient data")
)

// FetchError reports a failed fetch for a single symbol. It never
// propagates past the aggregator: the affected panel is rendered as a
// placeholder instead.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
