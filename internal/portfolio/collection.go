package portfolio

import "fmt"

// The admin UI edits every entity collection the same way: new items go to
// the front, removals shift the tail left, updates touch one index.

// Prepend returns a new slice with item first and the previous items after
// it, in their original order. The input slice is not modified.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveAt returns a new slice without the element at idx, preserving the
// relative order of the remaining elements.
func RemoveAt[T any](items []T, idx int) ([]T, error) {
	if idx < 0 || idx >= len(items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(items))
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), nil
}

// UpdateAt applies fn to the element at idx in place.
func UpdateAt[T any](items []T, idx int, fn func(*T)) error {
	if idx < 0 || idx >= len(items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(items))
	}
	fn(&items[idx])
	return nil
}
