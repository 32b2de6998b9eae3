package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	bayes "github.com/jamesainslie/go-bayes"
	"github.com/jamesainslie/go-bayes/dataset"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		predicted []string
		truth     []string
		wantTP    int
		wantFP    int
		wantFN    int
		wantTN    int
		wantAcc   float64
	}{
		{
			name:      "perfect match",
			predicted: []string{"spam", "ham", "spam"},
			truth:     []string{"spam", "ham", "spam"},
			wantTP:    2,
			wantTN:    1,
			wantAcc:   1,
		},
		{
			name:      "false positive",
			predicted: []string{"spam", "spam"},
			truth:     []string{"spam", "ham"},
			wantTP:    1,
			wantFP:    1,
			wantAcc:   0.5,
		},
		{
			name:      "false negative",
			predicted: []string{"ham", "ham", "ham", "ham"},
			truth:     []string{"spam", "ham", "ham", "ham"},
			wantFN:    1,
			wantTN:    3,
			wantAcc:   0.75,
		},
		{
			name:    "empty",
			wantAcc: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.predicted, tt.truth, "spam")

			if got.TruePositives != tt.wantTP {
				t.Errorf("TruePositives = %d, want %d", got.TruePositives, tt.wantTP)
			}
			if got.FalsePositives != tt.wantFP {
				t.Errorf("FalsePositives = %d, want %d", got.FalsePositives, tt.wantFP)
			}
			if got.FalseNegatives != tt.wantFN {
				t.Errorf("FalseNegatives = %d, want %d", got.FalseNegatives, tt.wantFN)
			}
			if got.TrueNegatives != tt.wantTN {
				t.Errorf("TrueNegatives = %d, want %d", got.TrueNegatives, tt.wantTN)
			}
			if got.Accuracy != tt.wantAcc {
				t.Errorf("Accuracy = %v, want %v", got.Accuracy, tt.wantAcc)
			}
		})
	}
}

func TestCompute_Ratios(t *testing.T) {
	// TP=2 FP=1 FN=1 TN=1
	m := Compute(
		[]string{"spam", "spam", "spam", "ham", "ham"},
		[]string{"spam", "spam", "ham", "spam", "ham"},
		"spam",
	)

	if m.Precision != 2.0/3.0 {
		t.Errorf("Precision = %v, want %v", m.Precision, 2.0/3.0)
	}
	if m.Recall != 2.0/3.0 {
		t.Errorf("Recall = %v, want %v", m.Recall, 2.0/3.0)
	}
	if diff := m.F1 - 2.0/3.0; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("F1 = %v, want %v", m.F1, 2.0/3.0)
	}
	if m.Total() != 5 {
		t.Errorf("Total() = %d, want 5", m.Total())
	}
}

func TestMajorityBaseline(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  float64
	}{
		{"empty", nil, 0},
		{"balanced", []int{0, 1, 0, 1}, 0.5},
		{"skewed", []int{0, 0, 0, 1}, 0.75},
		{"single class", []int{1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := dataset.Split{Texts: make([]string, len(tt.codes)), Codes: tt.codes}
			if got := MajorityBaseline(split); got != tt.want {
				t.Errorf("MajorityBaseline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func quietModel(opts ...bayes.Option) *bayes.Model {
	return bayes.New(append(opts, quietOption())...)
}

func smsDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	c := &Corpus{}
	spam := []string{
		"WINNER!! claim your free prize now",
		"free entry to win cash, text WIN now",
		"urgent! your account won a prize, call now",
		"cheap meds, free delivery, order now",
	}
	ham := []string{
		"are we still meeting for lunch today",
		"ok see you at home later",
		"can you pick up milk on the way",
		"i will call you when i get there",
		"sorry, running late for dinner",
	}
	for i := 0; i < 5; i++ {
		for _, s := range spam {
			c.Append(s, "spam")
		}
		for _, h := range ham {
			c.Append(h, "ham")
		}
	}

	ds, err := c.Dataset()
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if err := ds.Split(0.2, 0.2, dataset.WithSeed(5)); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	return ds
}

func TestEvaluate(t *testing.T) {
	ds := smsDataset(t)

	model := quietModel()
	if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	m, err := Evaluate(context.Background(), model, ds.Test(), ds.Labels(), 2)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want, err := model.Evaluate(ds.Test())
	if err != nil {
		t.Fatalf("model.Evaluate() error = %v", err)
	}
	if m.Accuracy != want {
		t.Errorf("Accuracy = %v, want %v (model.Evaluate)", m.Accuracy, want)
	}
	if m.Total() != ds.Test().Len() {
		t.Errorf("Total() = %d, want %d", m.Total(), ds.Test().Len())
	}
}

func TestEvaluate_Errors(t *testing.T) {
	ds := smsDataset(t)

	unfitted := quietModel()
	if _, err := Evaluate(context.Background(), unfitted, ds.Test(), ds.Labels(), 1); !errors.Is(err, bayes.ErrModelNotFitted) {
		t.Errorf("expected ErrModelNotFitted, got %v", err)
	}

	model := quietModel()
	if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := Evaluate(context.Background(), model, dataset.Split{}, ds.Labels(), 1); !errors.Is(err, bayes.ErrEmptySplit) {
		t.Errorf("expected ErrEmptySplit, got %v", err)
	}
}

func TestEvaluateDataset(t *testing.T) {
	ds := smsDataset(t)

	model := quietModel()
	if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	r, err := EvaluateDataset(context.Background(), model, ds, 2)
	if err != nil {
		t.Fatalf("EvaluateDataset() error = %v", err)
	}

	if r.Validation.Total() != ds.Validation().Len() {
		t.Errorf("validation total = %d, want %d", r.Validation.Total(), ds.Validation().Len())
	}
	if r.Test.Total() != ds.Test().Len() {
		t.Errorf("test total = %d, want %d", r.Test.Total(), ds.Test().Len())
	}
	if r.Baseline != MajorityBaseline(ds.Test()) {
		t.Errorf("Baseline = %v, want %v", r.Baseline, MajorityBaseline(ds.Test()))
	}
}

func quietOption() bayes.Option {
	return bayes.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
