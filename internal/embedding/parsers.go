// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package embedding

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// parseLiteral accepts a bracketed or parenthesized comma list of numeric
// literals ("[1, 2.5, -3e-2]", "(1, 2,)") or a single bare number. Word
// tokens such as nan or inf are rejected; only the token parser accepts
// those.
func parseLiteral(s string) (Vector, bool) {
	if isNumericLiteral(s) {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, false
		}
		return Vector{float32(f)}, true
	}

	if len(s) < 2 {
		return nil, false
	}
	open, closing := s[0], s[len(s)-1]
	if !(open == '[' && closing == ']') && !(open == '(' && closing == ')') {
		return nil, false
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Vector{}, true
	}

	parts := strings.Split(body, ",")
	// One trailing comma is legal literal syntax.
	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	v := make(Vector, 0, len(parts))
	for _, p := range parts {
		tok := strings.TrimSpace(p)
		if !isNumericLiteral(tok) {
			return nil, false
		}
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, false
		}
		v = append(v, float32(f))
	}
	return v, true
}

// parseJSONSpaced replaces every space with a comma and decodes the result as
// JSON. This recovers numpy's "[0.1 0.2 0.3]" rendering.
func parseJSONSpaced(s string) (Vector, bool) {
	data := []byte(strings.ReplaceAll(s, " ", ","))

	var list []float64
	if err := json.Unmarshal(data, &list); err == nil {
		v := make(Vector, len(list))
		for i, f := range list {
			v[i] = float32(f)
		}
		return v, true
	}

	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		return Vector{float32(scalar)}, true
	}
	return nil, false
}

// parseTokens strips surrounding brackets, treats commas as whitespace and
// parses every remaining token as a float.
func parseTokens(s string) (Vector, bool) {
	body := strings.Trim(s, "[]")
	body = strings.ReplaceAll(body, ",", " ")
	fields := strings.Fields(body)

	v := make(Vector, 0, len(fields))
	for _, tok := range fields {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, false
		}
		v = append(v, float32(f))
	}
	return v, true
}

// isNumericLiteral reports whether tok looks like a decimal int or float
// literal: optional sign, digits with at most one dot, optional exponent.
func isNumericLiteral(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[i] == '+' || tok[i] == '-' {
		i++
	}
	digits, dot := 0, false
	for i < len(tok) {
		c := tok[i]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		i++
	}
	if digits == 0 {
		return false
	}
	if i == len(tok) {
		return true
	}
	if tok[i] != 'e' && tok[i] != 'E' {
		return false
	}
	i++
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	expDigits := 0
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
		expDigits++
	}
	return expDigits > 0
}
