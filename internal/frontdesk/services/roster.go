package services

// Roster is an ordered sequence that keeps insertion order.
type Roster[T any] struct {
	items []T
}

func NewRoster[T any]() *Roster[T] {
	return &Roster[T]{}
}

// Add appends v at the end.
func (r *Roster[T]) Add(v T) {
	r.items = append(r.items, v)
}

// Remove deletes the first entry for which match returns true. Removing
// something that is not there is a no-op and reports false.
func (r *Roster[T]) Remove(match func(T) bool) bool {
	for i, v := range r.items {
		if match(v) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// ToSlice returns a copy of the entries in order.
func (r *Roster[T]) ToSlice() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Roster[T]) Size() int {
	return len(r.items)
}

// Equal builds a Remove predicate matching by value.
func Equal[T comparable](v T) func(T) bool {
	return func(x T) bool { return x == v }
}
