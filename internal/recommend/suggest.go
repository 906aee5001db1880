// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"sort"
	"sync/atomic"

	"github.com/tomtom215/cinecluster/internal/cache"
	"github.com/tomtom215/cinecluster/internal/dataset"
)

// titleIndex is rebuilt wholesale on every dataset swap.
type titleIndex struct {
	titles []string // unique, ascending
	prefix *cache.Trie[int]
}

// Suggester proposes titles for misspelled or partial user input.
type Suggester struct {
	cutoff   float64
	defaultN int
	index    atomic.Pointer[titleIndex]
}

// NewSuggester returns an empty suggester. Call Rebuild with a dataset.
func NewSuggester(cfg SuggestConfig) *Suggester {
	if cfg.DefaultN < 1 {
		cfg.DefaultN = DefaultConfig().Suggest.DefaultN
	}
	return &Suggester{cutoff: cfg.Cutoff, defaultN: cfg.DefaultN}
}

// Rebuild indexes the titles of ds. Autocomplete ranks titles by
// popularity.
func (s *Suggester) Rebuild(ds *dataset.Dataset) {
	idx := &titleIndex{prefix: cache.NewTrie[int]()}
	seen := make(map[string]struct{}, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		idx.prefix.Insert(rec.Title, i, rec.Popularity)
		if _, dup := seen[rec.Title]; !dup && rec.Title != "" {
			seen[rec.Title] = struct{}{}
			idx.titles = append(idx.titles, rec.Title)
		}
	}
	sort.Strings(idx.titles)
	s.index.Store(idx)
}

// Suggest returns up to n titles whose similarity ratio to input is at
// least the cutoff, best first; equal ratios put the lexically greater
// title first. Empty input yields no suggestions.
func (s *Suggester) Suggest(input string, n int) []string {
	idx := s.index.Load()
	if input == "" || idx == nil {
		return []string{}
	}
	if n <= 0 {
		n = s.defaultN
	}

	type match struct {
		title string
		ratio float64
	}
	var matches []match
	for _, t := range idx.titles {
		if r := similarityRatio(t, input); r >= s.cutoff {
			matches = append(matches, match{title: t, ratio: r})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].ratio != matches[j].ratio {
			return matches[i].ratio > matches[j].ratio
		}
		return matches[i].title > matches[j].title
	})
	if len(matches) > n {
		matches = matches[:n]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.title
	}
	return out
}

// Autocomplete returns up to n titles starting with prefix, ignoring case,
// most popular first.
func (s *Suggester) Autocomplete(prefix string, n int) []string {
	idx := s.index.Load()
	if idx == nil || prefix == "" {
		return []string{}
	}
	if n <= 0 {
		n = s.defaultN
	}
	results := idx.prefix.Complete(prefix, n)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out
}
