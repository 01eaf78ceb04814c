// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

// Catalog is an ordered, read-only collection of items keyed by unique ID.
type Catalog struct {
	items []Item
	index map[int]int
}

// NewCatalog builds a catalog preserving the input order.
// Duplicate IDs are rejected with ErrDataIntegrity.
//
//nolint:gocritic // rangeValCopy: items are copied into the catalog once
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[int]int, len(items)),
	}

	for _, item := range items {
		if pos, dup := c.index[item.ID]; dup {
			return nil, dataIntegrity("duplicate catalog id %d (positions %d and %d)", item.ID, pos, len(c.items))
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Lookup returns the item with the given ID.
func (c *Catalog) Lookup(id int) (Item, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[pos], true
}

// Contains reports whether the catalog has an item with the given ID.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns item IDs in catalog order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.items))
	for i := range c.items {
		ids[i] = c.items[i].ID
	}
	return ids
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// each calls fn for every item in catalog order without copying the slice.
func (c *Catalog) each(fn func(item *Item)) {
	for i := range c.items {
		fn(&c.items[i])
	}
}
