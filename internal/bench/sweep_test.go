package bench

import (
	"context"
	"testing"
)

func TestSweepAlphas(t *testing.T) {
	alphas := SweepAlphas(0.25, 1.5, 0.25)

	want := []float64{0.25, 0.5, 0.75, 1, 1.25}
	if len(alphas) != len(want) {
		t.Errorf("got %d alphas, want %d", len(alphas), len(want))
		t.Logf("got: %v", alphas)
		return
	}

	for i := range want {
		diff := alphas[i] - want[i]
		if diff < -0.001 || diff > 0.001 {
			t.Errorf("alpha[%d] = %v, want %v", i, alphas[i], want[i])
		}
	}
}

func TestSweepAlphas_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		min, max, step float64
	}{
		{"zero step", 0.1, 1, 0},
		{"negative step", 0.1, 1, -0.1},
		{"zero min", 0, 1, 0.1},
		{"empty range", 1, 1, 0.1},
		{"reversed range", 2, 1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SweepAlphas(tt.min, tt.max, tt.step); len(got) != 0 {
				t.Errorf("SweepAlphas(%v, %v, %v) = %v, want none", tt.min, tt.max, tt.step, got)
			}
		})
	}
}

func TestSweep(t *testing.T) {
	ds := smsDataset(t)
	alphas := []float64{2, 0.5, 1}

	results, err := Sweep(context.Background(), ds, alphas, 2, quietOption())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	if len(results) != len(alphas) {
		t.Fatalf("got %d results, want %d", len(results), len(alphas))
	}

	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if prev.Metrics.Accuracy < cur.Metrics.Accuracy {
			t.Errorf("results not sorted by accuracy: %v before %v", prev.Metrics.Accuracy, cur.Metrics.Accuracy)
		}
		if prev.Metrics.Accuracy == cur.Metrics.Accuracy && prev.Alpha > cur.Alpha {
			t.Errorf("equal accuracy should keep smaller alpha first: %v before %v", prev.Alpha, cur.Alpha)
		}
	}
}

func TestSweep_Cancelled(t *testing.T) {
	ds := smsDataset(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Sweep(ctx, ds, []float64{1}, 1); err == nil {
		t.Error("expected error for cancelled context")
	}
}
