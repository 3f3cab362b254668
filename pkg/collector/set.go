package collector

// OrderedSet is a string set that remembers insertion order, so window
// output is deterministic for a given sequence of page contents.
type OrderedSet struct {
	seen  map[string]struct{}
	items []string
}

// NewOrderedSet creates an empty ordered set
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{
		seen: make(map[string]struct{}),
	}
}

// Add inserts a value if it is not already present and reports whether
// it was inserted
func (s *OrderedSet) Add(value string) bool {
	if _, ok := s.seen[value]; ok {
		return false
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
	return true
}

// Contains reports whether a value is in the set
func (s *OrderedSet) Contains(value string) bool {
	_, ok := s.seen[value]
	return ok
}

// Len returns the number of unique values
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Values returns the unique values in insertion order
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
