package permmap

// OrderedSet is a sequence without duplicates that remembers first-insertion
// order. The zero value is ready to use.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewOrderedSet returns a set holding items in first-seen order.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	s.AddAll(items...)
	return s
}

// Add inserts item and reports whether it was not already present.
func (s *OrderedSet[T]) Add(item T) bool {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// AddAll inserts every item, skipping those already present.
func (s *OrderedSet[T]) AddAll(items ...T) {
	for _, item := range items {
		s.Add(item)
	}
}

// Contains reports whether item is in the set.
func (s *OrderedSet[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of distinct items.
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order. It never returns nil.
func (s *OrderedSet[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
