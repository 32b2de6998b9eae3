package bench

import (
	"context"
	"fmt"

	bayes "github.com/jamesainslie/go-bayes"
	"github.com/jamesainslie/go-bayes/dataset"
	"github.com/jamesainslie/go-bayes/inference"
)

// Metrics holds evaluation results, with spam as the positive class.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
	Accuracy       float64
	Precision      float64
	Recall         float64
	F1             float64
}

// Total returns the number of evaluated messages.
func (m Metrics) Total() int {
	return m.TruePositives + m.FalsePositives + m.FalseNegatives + m.TrueNegatives
}

// Compute compares predicted labels against ground truth.
// positive names the spam label.
func Compute(predicted, truth []string, positive string) Metrics {
	var m Metrics

	for i := range truth {
		if i >= len(predicted) {
			break
		}
		predPos := predicted[i] == positive
		truePos := truth[i] == positive
		switch {
		case predPos && truePos:
			m.TruePositives++
		case predPos && !truePos:
			m.FalsePositives++
		case !predPos && truePos:
			m.FalseNegatives++
		default:
			m.TrueNegatives++
		}
	}

	return m.finish()
}

// finish derives the ratios from the confusion counts.
func (m Metrics) finish() Metrics {
	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives

	if total := m.Total(); total > 0 {
		m.Accuracy = float64(tp+m.TrueNegatives) / float64(total)
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	return m
}

// Evaluate runs model over split with workers goroutines and scores the
// predictions. labels decodes the split's label codes.
func Evaluate(ctx context.Context, model *bayes.Model, split dataset.Split, labels dataset.LabelCode, workers int) (Metrics, error) {
	spam, _, err := model.Labels()
	if err != nil {
		return Metrics{}, err
	}
	if split.Len() == 0 {
		return Metrics{}, fmt.Errorf("%s: %w", split.Name, bayes.ErrEmptySplit)
	}

	truth := make([]string, split.Len())
	for i, code := range split.Codes {
		label, ok := labels.Label(code)
		if !ok {
			return Metrics{}, fmt.Errorf("%w: unknown label code %d", bayes.ErrInvalidInput, code)
		}
		truth[i] = label
	}

	// Real corpora repeat messages; classify each distinct one once.
	cached, err := inference.NewCached(model, split.Len())
	if err != nil {
		return Metrics{}, err
	}

	predicted, err := inference.NewPool(cached, workers).ClassifyAll(ctx, split.Texts)
	if err != nil {
		return Metrics{}, fmt.Errorf("classify %s: %w", split.Name, err)
	}

	return Compute(predicted, truth, spam), nil
}

// MajorityBaseline returns the accuracy of always predicting the most
// frequent label code of split, or 0 for an empty split.
func MajorityBaseline(split dataset.Split) float64 {
	if split.Len() == 0 {
		return 0
	}

	counts := make(map[int]int)
	best := 0
	for _, code := range split.Codes {
		counts[code]++
		best = max(best, counts[code])
	}

	return float64(best) / float64(split.Len())
}

// Report holds the held-out evaluation of one fitted model.
type Report struct {
	Validation Metrics
	Test       Metrics
	Baseline   float64 // majority baseline on the test split
}

// EvaluateDataset scores model on the validation and test splits of ds.
// Empty splits are reported as zero Metrics.
func EvaluateDataset(ctx context.Context, model *bayes.Model, ds *dataset.Dataset, workers int) (Report, error) {
	var r Report

	if val := ds.Validation(); val.Len() > 0 {
		m, err := Evaluate(ctx, model, val, ds.Labels(), workers)
		if err != nil {
			return Report{}, err
		}
		r.Validation = m
	}

	if test := ds.Test(); test.Len() > 0 {
		m, err := Evaluate(ctx, model, test, ds.Labels(), workers)
		if err != nil {
			return Report{}, err
		}
		r.Test = m
		r.Baseline = MajorityBaseline(test)
	}

	return r, nil
}
