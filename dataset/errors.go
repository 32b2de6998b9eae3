package dataset

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidInput indicates malformed or empty input data.
	ErrInvalidInput = errors.New("bayes: invalid input")

	// ErrInvalidSplit indicates split fractions outside the allowed range.
	ErrInvalidSplit = errors.New("bayes: invalid split")
)
