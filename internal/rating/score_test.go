package rating

import (
	"math"
	"testing"
)

func TestComputeOverall_EmptyInput(t *testing.T) {
	if got := ComputeOverall(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %g", got)
	}
	if got := ComputeOverall([]float64{}); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %g", got)
	}
}

func TestComputeOverall_KnownValues(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"mean 8 rescales to 4", []float64{6, 8, 10}, 4.0},
		{"zeroes count toward the mean", []float64{0, 0, 3}, 0.5},
		{"story 8 art 6 gives 3.5", []float64{8, 6}, 3.5},
		{"all max", []float64{10, 10, 10, 10, 10}, 5.0},
		{"all zero", []float64{0, 0, 0}, 0.0},
		{"single value", []float64{7}, 3.5},
		{"half steps survive", []float64{7.5}, 4.0}, // 3.75 rounds up (half away from zero)
		{"quarter point rounds up", []float64{6.5, 6.5}, 3.5}, // 3.25 is a half-way point
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeOverall(tc.values); got != tc.want {
				t.Fatalf("ComputeOverall(%v) = %g, want %g", tc.values, got, tc.want)
			}
		})
	}
}

func TestComputeOverall_OrderIrrelevant(t *testing.T) {
	a := ComputeOverall([]float64{2, 9.5, 4, 0, 10})
	b := ComputeOverall([]float64{10, 0, 4, 9.5, 2})
	if a != b {
		t.Fatalf("order changed the result: %g vs %g", a, b)
	}
}

func TestComputeOverall_RangeAndQuantization(t *testing.T) {
	// Sweep every half-step combination of up to three categories and check
	// the output is always in [0,5] on a half-point step.
	steps := make([]float64, 0, 21)
	for v := 0.0; v <= 10.0; v += 0.5 {
		steps = append(steps, v)
	}

	check := func(values []float64) {
		got := ComputeOverall(values)
		if got < 0 || got > 5 {
			t.Fatalf("ComputeOverall(%v) = %g out of range", values, got)
		}
		if got*2 != math.Trunc(got*2) {
			t.Fatalf("ComputeOverall(%v) = %g not quantized to 0.5", values, got)
		}
	}

	for _, a := range steps {
		check([]float64{a})
		for _, b := range steps {
			check([]float64{a, b})
		}
	}
}

func TestRoundToHalf_HalfAwayFromZero(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.74, 1.5},
		{1.75, 2.0}, // exact half rounds away from zero
		{1.76, 2.0},
		{0.24, 0.0},
		{0.25, 0.5},
		{3.5, 3.5},
	}
	for _, tc := range cases {
		if got := RoundToHalf(tc.in); got != tc.want {
			t.Fatalf("RoundToHalf(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}
