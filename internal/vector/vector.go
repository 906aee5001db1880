// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

// Package vector holds the dense-vector math shared by the recommender and
// the cluster analytics. Embeddings are stored as float32; every computation
// widens them to float64 and runs on gonum.
package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Cosine returns dot(a,b) / sqrt(|a|^2 * |b|^2), clamped to [-1, 1]. It is 0
// when either norm is 0, when the lengths differ, or when the vectors are
// empty. Cosine(a, a) is exactly 1 for any non-zero a.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	x, y := widen(a), widen(b)
	normA, normB := floats.Dot(x, x), floats.Dot(y, y)
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := floats.Dot(x, y) / math.Sqrt(normA*normB)
	switch {
	case math.IsNaN(sim):
		return 0
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	return floats.Norm(widen(v), 2)
}

// Mean returns the element-wise mean of vs. All vectors must share the
// length of vs[0]; shorter or longer ones are skipped. Returns nil for no
// input.
func Mean(vs [][]float32) []float32 {
	if len(vs) == 0 {
		return nil
	}
	dim := len(vs[0])
	if dim == 0 {
		return []float32{}
	}

	data := make([]float64, 0, len(vs)*dim)
	rows := 0
	for _, v := range vs {
		if len(v) != dim {
			continue
		}
		for _, x := range v {
			data = append(data, float64(x))
		}
		rows++
	}

	m := mat.NewDense(rows, dim, data)
	out := make([]float32, dim)
	col := make([]float64, rows)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, m)
		out[j] = float32(stat.Mean(col, nil))
	}
	return out
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
