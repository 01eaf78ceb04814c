// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

// Candidates returns every catalog item not in seen, in catalog order.
// A seen set covering the whole catalog yields an empty, non-nil slice.
func Candidates(catalog *Catalog, seen ItemSet) []int {
	if catalog == nil {
		return []int{}
	}

	out := make([]int, 0, max(catalog.Len()-seen.Len(), 0))
	catalog.each(func(item *Item) {
		if !seen.Contains(item.ID) {
			out = append(out, item.ID)
		}
	})
	return out
}

// excludeIDs drops ids from candidates while preserving order.
func excludeIDs(candidates []int, ids []int) []int {
	if len(ids) == 0 {
		return candidates
	}

	drop := NewItemSet(ids...)
	filtered := make([]int, 0, len(candidates))
	for _, id := range candidates {
		if !drop.Contains(id) {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
