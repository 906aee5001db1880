// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"math"
	"testing"
)

func TestSimilarityRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"Alien", "Alien", 1},
		{"abc", "xyz", 0},
		{"abcd", "bcde", 0.75},
		{"Alien", "Alein", 0.8},
		{"Aliens", "Alein", 8.0 / 11.0},
		{"The Matrix", "matrix", 0.625},
		{"ab", "a", 2.0 / 3.0},
		{"Amélie", "Amelie", 10.0 / 12.0},
		{"Heat", "", 0},
		{"Se7en", "Seven", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := similarityRatio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
