package match

// Broadcast holds either one value shared by every input or one value per input.
// The zero value is unset. An explicit empty PerInput is set and fails Expand.
type Broadcast[T any] struct {
	items []T
	given bool
}

// Single shares v across all inputs.
func Single[T any](v T) Broadcast[T] {
	return Broadcast[T]{items: []T{v}, given: true}
}

// PerInput assigns vs[i] to input i. A one-element list behaves like Single.
func PerInput[T any](vs ...T) Broadcast[T] {
	items := make([]T, len(vs))
	copy(items, vs)
	return Broadcast[T]{items: items, given: true}
}

// IsSet reports whether the field was given, even as an empty list.
func (b Broadcast[T]) IsSet() bool { return b.given }

// IsShared reports whether one value applies to every input.
func (b Broadcast[T]) IsShared() bool { return len(b.items) == 1 }

func (b Broadcast[T]) Len() int { return len(b.items) }

// Expand normalizes b to exactly n values. Only lengths 1 and n are accepted.
func (b Broadcast[T]) Expand(field string, n int) ([]T, error) {
	switch len(b.items) {
	case 0:
		return nil, configErrorf(field, ErrLengthMismatch,
			"expected 1 or %d entries (one per input file), got none", n)
	case 1:
		out := make([]T, n)
		for i := range out {
			out[i] = b.items[0]
		}
		return out, nil
	case n:
		out := make([]T, n)
		copy(out, b.items)
		return out, nil
	default:
		return nil, configErrorf(field, ErrLengthMismatch,
			"expected 1 or %d entries (one per input file), got %d", n, len(b.items))
	}
}
