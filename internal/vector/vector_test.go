// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 0}, []float32{5, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 1}, []float32{-1, -1}, -1},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSelfIsExactlyOne(t *testing.T) {
	t.Parallel()

	vs := [][]float32{
		{1, 1, 1},
		{3, 7, 11, 13},
		{0.3, 0.4},
		{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7},
		{-2.5, 1e-3, 42},
	}
	for _, v := range vs {
		if got := Cosine(v, v); got != 1 {
			t.Errorf("Cosine(%v, itself) = %v, want exactly 1", v, got)
		}
		neg := make([]float32, len(v))
		for i, x := range v {
			neg[i] = -x
		}
		if got := Cosine(v, neg); got != -1 {
			t.Errorf("Cosine(%v, -itself) = %v, want exactly -1", v, got)
		}
	}
}

func TestCosineBounded(t *testing.T) {
	t.Parallel()

	vs := [][]float32{{1, 2, 3}, {3, 2, 1}, {0.1, 0.9, 0.3}, {1e-3, 1e3, 7}, {-1, 0.5, 2}}
	for _, a := range vs {
		for _, b := range vs {
			got := Cosine(a, b)
			if math.IsNaN(got) || got > 1 || got < -1 {
				t.Errorf("Cosine(%v, %v) = %v, want within [-1, 1]", a, b, got)
			}
		}
	}
}

func TestMean(t *testing.T) {
	t.Parallel()

	got := Mean([][]float32{{1, 2}, {3, 4}, {5}})
	want := []float32{2, 3}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Mean = %v, want %v", got, want)
	}
	if Mean(nil) != nil {
		t.Error("Mean(nil) should be nil")
	}
	if got := Mean([][]float32{{}}); got == nil || len(got) != 0 {
		t.Errorf("Mean of empty vectors = %v, want empty", got)
	}
}

func TestNorm(t *testing.T) {
	t.Parallel()

	if got := Norm([]float32{3, 4}); got != 5 {
		t.Errorf("Norm = %v, want 5", got)
	}
}
