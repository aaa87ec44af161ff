package domain

import "slices"

// FavoriteSet is an insertion-ordered set of product ids. Values are immutable:
// With and Without return new sets.
type FavoriteSet struct {
	ids []string
}

func NewFavoriteSet(ids ...string) FavoriteSet {
	var s FavoriteSet
	for _, id := range ids {
		if id == "" || s.Contains(id) {
			continue
		}
		s.ids = append(s.ids, id)
	}
	return s
}

func (s FavoriteSet) Contains(productID string) bool {
	return slices.Contains(s.ids, productID)
}

func (s FavoriteSet) With(productID string) FavoriteSet {
	if s.Contains(productID) {
		return s
	}
	ids := make([]string, 0, len(s.ids)+1)
	ids = append(ids, s.ids...)
	return FavoriteSet{ids: append(ids, productID)}
}

func (s FavoriteSet) Without(productID string) FavoriteSet {
	idx := slices.Index(s.ids, productID)
	if idx < 0 {
		return s
	}
	return FavoriteSet{ids: slices.Delete(slices.Clone(s.ids), idx, idx+1)}
}

func (s FavoriteSet) IDs() []string {
	return slices.Clone(s.ids)
}

func (s FavoriteSet) Len() int {
	return len(s.ids)
}
