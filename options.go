package bayes

import (
	"log/slog"
	"math"
	"runtime"
)

// DefaultPositiveLabel is the label treated as spam unless WithPositiveLabel
// says otherwise.
const DefaultPositiveLabel = "spam"

// Option configures a Model.
type Option func(*config)

type config struct {
	alpha    float64
	positive string
	poolSize int
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		alpha:    1,
		positive: DefaultPositiveLabel,
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithAlpha sets the Laplace smoothing constant (default: 1).
// Non-positive or non-finite values are ignored.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		if alpha > 0 && !math.IsInf(alpha, 1) {
			c.alpha = alpha
		}
	}
}

// WithPositiveLabel names the label treated as spam (default: "spam").
// The other label of the training set becomes the ham label.
func WithPositiveLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.positive = label
		}
	}
}

// WithPoolSize sets how many inferences EvaluateContext runs at once
// (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
