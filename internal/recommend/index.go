// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import "sort"

// ItemSet is a read-only set of item IDs.
type ItemSet struct {
	m map[int]struct{}
}

// NewItemSet builds a set from ids. Duplicates collapse.
func NewItemSet(ids ...int) ItemSet {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return ItemSet{m: m}
}

// Contains reports whether id is in the set.
func (s ItemSet) Contains(id int) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the number of distinct IDs.
func (s ItemSet) Len() int {
	return len(s.m)
}

// IDs returns the members in ascending order.
func (s ItemSet) IDs() []int {
	ids := make([]int, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// InteractionIndex is a per-user projection of the interaction log onto
// seen item IDs. It is immutable once built.
type InteractionIndex struct {
	seen         map[int]map[int]struct{}
	interactions int
}

// BuildIndex indexes interactions by user in a single pass.
func BuildIndex(interactions []Interaction) *InteractionIndex {
	idx := &InteractionIndex{
		seen:         make(map[int]map[int]struct{}),
		interactions: len(interactions),
	}

	for _, in := range interactions {
		items, ok := idx.seen[in.UserID]
		if !ok {
			items = make(map[int]struct{})
			idx.seen[in.UserID] = items
		}
		items[in.ItemID] = struct{}{}
	}

	return idx
}

// SeenItems returns the distinct items the user has interacted with.
// An unknown user yields an empty set.
func (x *InteractionIndex) SeenItems(userID int) ItemSet {
	if x == nil {
		return ItemSet{}
	}
	return ItemSet{m: x.seen[userID]}
}

// HasUser reports whether the user has at least one interaction.
func (x *InteractionIndex) HasUser(userID int) bool {
	if x == nil {
		return false
	}
	return len(x.seen[userID]) > 0
}

// Users returns the number of distinct users.
func (x *InteractionIndex) Users() int {
	if x == nil {
		return 0
	}
	return len(x.seen)
}

// Interactions returns the number of raw interaction rows indexed.
func (x *InteractionIndex) Interactions() int {
	if x == nil {
		return 0
	}
	return x.interactions
}
