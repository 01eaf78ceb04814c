// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import "sort"

// less orders by score descending, then item ID ascending.
func less(a, b ScoredCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ItemID < b.ItemID
}

// TopN returns the n best candidates. Ties on score are broken by ascending
// item ID so the result is reproducible. The input slice is not modified.
func TopN(scored []ScoredCandidate, n int) ([]ScoredCandidate, error) {
	if n <= 0 {
		return nil, invalidArgument("n must be positive, got %d", n)
	}

	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.Slice(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// JoinCatalog attaches display names to ranked candidates.
// A candidate missing from the catalog is an ErrDataIntegrity.
func JoinCatalog(ranked []ScoredCandidate, catalog *Catalog) ([]Recommendation, error) {
	if catalog == nil {
		return nil, dataIntegrity("no catalog to join %d candidates against", len(ranked))
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, sc := range ranked {
		item, ok := catalog.Lookup(sc.ItemID)
		if !ok {
			return nil, dataIntegrity("scored item %d missing from catalog", sc.ItemID)
		}
		out = append(out, Recommendation{
			ItemID: sc.ItemID,
			Name:   item.Name,
			Score:  sc.Score,
		})
	}
	return out, nil
}
