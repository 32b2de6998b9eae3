package bayes

import (
	"errors"

	"github.com/jamesainslie/go-bayes/dataset"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidInput indicates malformed or empty input data.
	ErrInvalidInput = dataset.ErrInvalidInput

	// ErrInvalidSplit indicates split fractions outside the allowed range.
	ErrInvalidSplit = dataset.ErrInvalidSplit

	// ErrModelNotFitted indicates an operation that requires a successful Fit.
	ErrModelNotFitted = errors.New("bayes: model not fitted")

	// ErrEmptySplit indicates evaluation was requested on a split with no examples.
	ErrEmptySplit = errors.New("bayes: empty split")
)
