package bench

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	bayes "github.com/jamesainslie/go-bayes"
	"github.com/jamesainslie/go-bayes/dataset"
)

// SweepResult holds validation metrics for one smoothing constant.
type SweepResult struct {
	Alpha   float64
	Metrics Metrics
}

// SweepAlphas generates alpha values from min (inclusive) to max
// (exclusive) with the given step. Invalid ranges yield nil.
func SweepAlphas(min, max, step float64) []float64 {
	if step <= 0 || min <= 0 || min >= max {
		return nil
	}
	return lo.RangeWithSteps(min, max, step)
}

// Sweep fits one model per alpha on the training split of ds, scores it on
// the validation split, and returns results sorted by accuracy descending.
// Equal accuracies keep the smaller alpha first.
func Sweep(ctx context.Context, ds *dataset.Dataset, alphas []float64, workers int, opts ...bayes.Option) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(alphas))

	for _, alpha := range alphas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		model := bayes.New(append(slices.Clone(opts), bayes.WithAlpha(alpha))...)
		if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
			return nil, fmt.Errorf("alpha %g: %w", alpha, err)
		}

		m, err := Evaluate(ctx, model, ds.Validation(), ds.Labels(), workers)
		if err != nil {
			return nil, fmt.Errorf("alpha %g: %w", alpha, err)
		}

		results = append(results, SweepResult{Alpha: alpha, Metrics: m})
	}

	slices.SortStableFunc(results, func(a, b SweepResult) int {
		if c := cmp.Compare(b.Metrics.Accuracy, a.Metrics.Accuracy); c != 0 {
			return c
		}
		return cmp.Compare(a.Alpha, b.Alpha)
	})

	return results, nil
}
