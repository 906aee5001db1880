// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/vector"
)

// Ranking is the output of Rank.
type Ranking struct {
	Seed        dataset.MovieRecord
	PoolSize    int
	Items       []Recommendation
	EmptyReason EmptyReason
}

type scored struct {
	idx        int
	similarity float64
	score      float64
}

// poolMax holds the per-metric maxima used for normalization.
type poolMax struct {
	popularity float64
	vote       float64
	runtime    float64
}

// Rank computes the top k recommendations for title over ds. It performs
// no I/O.
//
//  1. The seed is the first record titled exactly title.
//  2. Candidates are the records sharing the seed's cluster, optionally
//     narrowed to genre strings containing genre.
//  3. Popularity, vote average and runtime are divided by their maximum
//     over the candidates (seed included, missing runtimes skipped). A zero
//     or absent maximum makes that signal 0.
//  4. Every record carrying the seed's title is removed, the rest are
//     stably sorted by blended score, and the first k are returned with
//     their raw cosine similarity.
func Rank(ds *dataset.Dataset, title string, k int, genre string, w Weights) (Ranking, error) {
	seedIdx := ds.Index(title)
	if seedIdx < 0 {
		return Ranking{}, &TitleNotFoundError{Title: title}
	}
	seed := ds.At(seedIdx)
	out := Ranking{Seed: seed, Items: []Recommendation{}}

	pool := candidatePool(ds, seed.ClusterID, genre)
	out.PoolSize = len(pool)
	if len(pool) == 0 {
		out.EmptyReason = EmptyNoCandidates
		return out, nil
	}
	if k <= 0 {
		out.EmptyReason = EmptyZeroK
		return out, nil
	}

	maxima := poolMaxima(ds, pool)
	ranked := make([]scored, 0, len(pool))
	for _, idx := range pool {
		rec := ds.At(idx)
		if rec.Title == title {
			continue
		}
		sim := vector.Cosine(seed.Embedding, rec.Embedding)
		ranked = append(ranked, scored{
			idx:        idx,
			similarity: sim,
			score:      blend(w, sim, rec, maxima),
		})
	}
	if len(ranked) == 0 {
		out.EmptyReason = EmptyOnlySeed
		return out, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out.Items = make([]Recommendation, len(ranked))
	for i, s := range ranked {
		out.Items[i] = Recommendation{Title: ds.At(s.idx).Title, Similarity: s.similarity}
	}
	return out, nil
}

// candidatePool returns dataset positions in load order.
func candidatePool(ds *dataset.Dataset, clusterID int, genre string) []int {
	members := ds.ClusterIndices(clusterID)
	if genre == "" {
		return append([]int(nil), members...)
	}
	pool := make([]int, 0, len(members))
	for _, idx := range members {
		if strings.Contains(ds.At(idx).Genres, genre) {
			pool = append(pool, idx)
		}
	}
	return pool
}

func poolMaxima(ds *dataset.Dataset, pool []int) poolMax {
	var m poolMax
	var seenPop, seenVote, seenRuntime bool
	for _, idx := range pool {
		rec := ds.At(idx)
		if !seenPop || rec.Popularity > m.popularity {
			m.popularity, seenPop = rec.Popularity, true
		}
		if !seenVote || rec.VoteAverage > m.vote {
			m.vote, seenVote = rec.VoteAverage, true
		}
		if rec.HasRuntime && (!seenRuntime || rec.Runtime > m.runtime) {
			m.runtime, seenRuntime = rec.Runtime, true
		}
	}
	return m
}

func normalize(v, maxV float64) float64 {
	if maxV == 0 {
		return 0
	}
	return v / maxV
}

func blend(w Weights, sim float64, rec dataset.MovieRecord, m poolMax) float64 {
	runtime := 0.0
	if rec.HasRuntime {
		runtime = normalize(rec.Runtime, m.runtime)
	}
	return w.Similarity*sim +
		w.Popularity*normalize(rec.Popularity, m.popularity) +
		w.Vote*normalize(rec.VoteAverage, m.vote) +
		w.Runtime*runtime
}
