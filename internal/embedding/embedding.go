// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

// Package embedding turns raw embedding cells from a tabular source into
// float32 vectors.
//
// Upstream exports are inconsistent: the same column can hold Python-style
// lists ("[0.1, 0.2]"), numpy-style space separated arrays ("[0.1 0.2]"),
// bare numbers, or a missing marker. Clean tries a fixed chain of parsers and
// returns nil when none of them accepts the cell or when any component is NaN
// or infinite. It never panics and never returns an error; callers drop rows
// with a nil result.
package embedding

import (
	"math"
	"strings"
)

// Vector is a dense embedding.
type Vector []float32

// Parser attempts one textual encoding. ok is false when the encoding does
// not apply.
type Parser struct {
	Name  string
	Parse func(s string) (v Vector, ok bool)
}

// DefaultChain is the order in which textual encodings are tried. The first
// parser that succeeds wins.
var DefaultChain = []Parser{
	{Name: "literal", Parse: parseLiteral},
	{Name: "json", Parse: parseJSONSpaced},
	{Name: "tokens", Parse: parseTokens},
}

// missing lists the lowercased sentinels that mean "no embedding".
var missing = map[string]struct{}{
	"":     {},
	"none": {},
	"null": {},
	"nan":  {},
}

// Clean converts one raw cell into a Vector using DefaultChain.
func Clean(raw any) Vector {
	return CleanWith(raw, DefaultChain)
}

// CleanWith is Clean with an explicit parser chain.
func CleanWith(raw any, chain []Parser) Vector {
	switch x := raw.(type) {
	case nil:
		return nil
	case Vector:
		return usable(append(Vector(nil), x...))
	case []float32:
		return usable(append(Vector(nil), x...))
	case []float64:
		v := make(Vector, len(x))
		for i, f := range x {
			v[i] = float32(f)
		}
		return usable(v)
	case []any:
		return fromAnySlice(x)
	case float64:
		return usable(Vector{float32(x)})
	case float32:
		return usable(Vector{x})
	case int:
		return Vector{float32(x)}
	case int64:
		return Vector{float32(x)}
	case []byte:
		return cleanString(string(x), chain)
	case string:
		return cleanString(x, chain)
	default:
		return nil
	}
}

func cleanString(raw string, chain []Parser) Vector {
	s := strings.TrimSpace(raw)
	if _, ok := missing[strings.ToLower(s)]; ok {
		return nil
	}
	for _, p := range chain {
		if v, ok := p.Parse(s); ok {
			return usable(v)
		}
	}
	return nil
}

func fromAnySlice(xs []any) Vector {
	v := make(Vector, 0, len(xs))
	for _, x := range xs {
		switch n := x.(type) {
		case float64:
			v = append(v, float32(n))
		case float32:
			v = append(v, n)
		case int:
			v = append(v, float32(n))
		case int64:
			v = append(v, float32(n))
		case int32:
			v = append(v, float32(n))
		default:
			return nil
		}
	}
	return usable(v)
}

// usable maps empty vectors and vectors with a NaN or infinite component to
// nil. An empty embedding cannot share the dataset's dimensionality, and a
// non-finite one poisons every similarity computed against it.
func usable(v Vector) Vector {
	if len(v) == 0 {
		return nil
	}
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return v
}
