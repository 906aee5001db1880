// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import "github.com/pmezard/go-difflib/difflib"

// similarityRatio returns the SequenceMatcher ratio 2*M/T of title against
// input, compared rune by rune. Identical strings score 1, disjoint ones 0.
func similarityRatio(title, input string) float64 {
	return difflib.NewMatcher(runeStrings(title), runeStrings(input)).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
