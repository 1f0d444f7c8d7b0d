package vecmath

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineScaleInvariant(t *testing.T) {
	a := []float64{0.3, 0.7, 0.1}
	b := []float64{0.6, 1.4, 0.2} // a 的 2 倍
	if got := Cosine(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Cosine(a, 2a) = %v, want 1.0", got)
	}
}
