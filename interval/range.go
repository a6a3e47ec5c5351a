// Package interval implements the half-open interval algebra used to track
// fragment extents, ambiguity runs, and oligo-length windows: Range is a
// single [lo, hi) interval, Cover is a normalized disjoint set of Ranges
// bounded by a universe.
package interval

import "golang.org/x/exp/constraints"

// Range is a half-open interval [Lo, Hi) over an unsigned integer domain.
// A Range with Lo == Hi is empty.
type Range[T constraints.Unsigned] struct {
	Lo, Hi T
}

// Empty reports whether r contains no elements.
func (r Range[T]) Empty() bool {
	return r.Hi <= r.Lo
}

// Size returns the number of elements in r.
func (r Range[T]) Size() T {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Contains reports whether x falls within r.
func (r Range[T]) Contains(x T) bool {
	return x >= r.Lo && x < r.Hi
}

// Overlaps reports whether r and o share any element.
func (r Range[T]) Overlaps(o Range[T]) bool {
	return r.Lo < o.Hi && o.Lo < r.Hi
}

// Includes reports whether o is entirely contained within r (the "<="
// inclusion test of the original Range class).
func (r Range[T]) Includes(o Range[T]) bool {
	if o.Empty() {
		return true
	}
	return o.Lo >= r.Lo && o.Hi <= r.Hi
}

// Equal reports whether r and o describe the same interval, treating all
// empty ranges as equal.
func (r Range[T]) Equal(o Range[T]) bool {
	if r.Empty() && o.Empty() {
		return true
	}
	return r.Lo == o.Lo && r.Hi == o.Hi
}

// Less orders ranges lexicographically by (Lo, Hi), matching the original
// Range::operator< used to keep a Cover's backing set sorted.
func (r Range[T]) Less(o Range[T]) bool {
	if r.Lo != o.Lo {
		return r.Lo < o.Lo
	}
	return r.Hi < o.Hi
}

// Intersect returns the overlap of r and o, or the empty range if they do
// not overlap.
func (r Range[T]) Intersect(o Range[T]) Range[T] {
	lo := max(r.Lo, o.Lo)
	hi := min(r.Hi, o.Hi)
	if hi <= lo {
		return Range[T]{}
	}
	return Range[T]{lo, hi}
}

// Union returns the smallest single range spanning both r and o. Callers
// that need to preserve gaps should use Cover instead.
func (r Range[T]) Union(o Range[T]) Range[T] {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Range[T]{min(r.Lo, o.Lo), max(r.Hi, o.Hi)}
}

// Shift translates r forward by delta elements (T is unsigned;
// ShiftBack moves a range the other way).
func (r Range[T]) Shift(delta T) Range[T] {
	if r.Empty() {
		return r
	}
	return Range[T]{r.Lo + delta, r.Hi + delta}
}

// ShiftBack translates r backward by delta elements. Callers must ensure
// delta <= r.Lo.
func (r Range[T]) ShiftBack(delta T) Range[T] {
	if r.Empty() {
		return r
	}
	return Range[T]{r.Lo - delta, r.Hi - delta}
}

// Amplify grows r by n elements on both ends (the "+=" amplification
// operator of the original Range, used to widen an ambiguity run by the
// maximum admissible oligo length on each side).
func (r Range[T]) Amplify(n T) Range[T] {
	if r.Empty() {
		return r
	}
	lo := T(0)
	if r.Lo > n {
		lo = r.Lo - n
	}
	return Range[T]{lo, r.Hi + n}
}

// Complement returns the (at most two) ranges of universe not covered by
// r. The result has 0, 1, or 2 elements.
func (r Range[T]) Complement(universe Range[T]) []Range[T] {
	inter := r.Intersect(universe)
	if inter.Empty() {
		if universe.Empty() {
			return nil
		}
		return []Range[T]{universe}
	}
	var out []Range[T]
	if inter.Lo > universe.Lo {
		out = append(out, Range[T]{universe.Lo, inter.Lo})
	}
	if inter.Hi < universe.Hi {
		out = append(out, Range[T]{inter.Hi, universe.Hi})
	}
	return out
}

func max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
