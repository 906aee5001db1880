// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package recommend ranks movies similar to a seed title.

# Algorithm

Candidates are restricted to the seed's cluster (and optionally to a genre
substring), then ranked by

	score = 0.50*similarity + 0.20*popularity + 0.20*vote + 0.10*runtime

where similarity is the cosine between embeddings and the other three are
divided by their maximum within the candidate pool. The weights live in
DefaultWeights and can be overridden through Config. The seed title never
recommends itself, ties keep dataset order, and only the raw similarity is
returned to callers.

Rank is the pure function carrying the algorithm. Engine wraps it with the
active dataset snapshot, request defaults, a response cache keyed by dataset
version, and Prometheus metrics.

# Suggestions

Suggester offers close matches for mistyped titles (sequence-matcher ratio,
cutoff 0.3) and popularity-ranked prefix completion. Both indexes are
rebuilt whenever the dataset is swapped.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), handle, logger)
	if err != nil {
		return err
	}
	resp, err := engine.Recommend(ctx, recommend.Request{Title: "Alien", K: 5})
	var nf *recommend.TitleNotFoundError
	if errors.As(err, &nf) {
		suggestions := engine.Suggest(nf.Title, 5)
		...
	}
*/
package recommend
