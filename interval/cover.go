package interval

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Cover is a normalized, sorted, disjoint set of Ranges bounded by a
// Universe. Adjacent or overlapping ranges are always merged on insert so
// len(Ranges) is the true number of disjoint gaps.
type Cover[T constraints.Unsigned] struct {
	Universe Range[T]
	Ranges   []Range[T]
}

// NewCover returns an empty Cover bounded by universe.
func NewCover[T constraints.Unsigned](universe Range[T]) Cover[T] {
	return Cover[T]{Universe: universe}
}

// Clear removes every range, keeping the universe.
func (c *Cover[T]) Clear() {
	c.Ranges = c.Ranges[:0]
}

// Empty reports whether c contains no ranges.
func (c *Cover[T]) Empty() bool {
	return len(c.Ranges) == 0
}

// Length returns the total number of elements covered.
func (c *Cover[T]) Length() T {
	var total T
	for _, r := range c.Ranges {
		total += r.Size()
	}
	return total
}

// Contains reports whether x is covered by any range in c.
func (c *Cover[T]) Contains(x T) bool {
	i, ok := slices.BinarySearchFunc(c.Ranges, x, func(r Range[T], x T) int {
		switch {
		case r.Hi <= x:
			return -1
		case r.Lo > x:
			return 1
		default:
			return 0
		}
	})
	return ok && c.Ranges[i].Contains(x)
}

// Insert adds r to the cover, merging it with any overlapping or adjacent
// existing range (the "+=" Range insert operator of the original Cover).
func (c *Cover[T]) Insert(r Range[T]) {
	r = r.Intersect(c.Universe)
	if r.Empty() {
		return
	}
	merged := r
	var out []Range[T]
	for _, existing := range c.Ranges {
		if existing.Hi < merged.Lo || existing.Lo > merged.Hi {
			out = append(out, existing)
			continue
		}
		merged = Range[T]{min(merged.Lo, existing.Lo), max(merged.Hi, existing.Hi)}
	}
	out = append(out, merged)
	slices.SortFunc(out, func(a, b Range[T]) bool { return a.Less(b) })
	c.Ranges = out
}

// InsertAll inserts every element of rs.
func (c *Cover[T]) InsertAll(rs []Range[T]) {
	for _, r := range rs {
		c.Insert(r)
	}
}

// Amplify grows every range in c by n elements on both ends, chopping and
// re-combining ranges as they grow into each other and clamping to the
// universe — the "+=" (T) amplification operator of the original Cover.
func (c *Cover[T]) Amplify(n T) {
	grown := make([]Range[T], len(c.Ranges))
	for i, r := range c.Ranges {
		grown[i] = r.Amplify(n).Intersect(c.Universe)
	}
	c.Ranges = nil
	c.InsertAll(grown)
}

// Shift translates every range and the universe forward by delta (the ">>"
// shift operator of the original Cover).
func (c *Cover[T]) Shift(delta T) {
	c.Universe = c.Universe.Shift(delta)
	for i := range c.Ranges {
		c.Ranges[i] = c.Ranges[i].Shift(delta)
	}
}

// IntersectUniverse narrows the universe to u and drops any range content
// outside of it (the "&=" universe-change operator).
func (c *Cover[T]) IntersectUniverse(u Range[T]) {
	c.Universe = c.Universe.Intersect(u)
	var out []Range[T]
	for _, r := range c.Ranges {
		if in := r.Intersect(c.Universe); !in.Empty() {
			out = append(out, in)
		}
	}
	c.Ranges = out
}

// Complement returns a new Cover holding the gaps of c within its
// universe — the elements NOT covered.
func (c *Cover[T]) Complement() Cover[T] {
	out := NewCover[T](c.Universe)
	cursor := c.Universe.Lo
	for _, r := range c.Ranges {
		if r.Lo > cursor {
			out.Insert(Range[T]{cursor, r.Lo})
		}
		if r.Hi > cursor {
			cursor = r.Hi
		}
	}
	if cursor < c.Universe.Hi {
		out.Insert(Range[T]{cursor, c.Universe.Hi})
	}
	return out
}

// Flip reverses c's coordinate system within its universe: element x maps
// to universe.Hi - x + universe.Lo - 1, inclusive index flipped through the
// half-open convention. This produces the reverse-complement coordinate
// mapping used when registering a fragment's reverse-complement strand.
func (c *Cover[T]) Flip() Cover[T] {
	out := NewCover[T](c.Universe)
	for _, r := range c.Ranges {
		lo := c.Universe.Hi - r.Hi + c.Universe.Lo
		out.Insert(Range[T]{lo, lo + r.Size()})
	}
	return out
}

// Window reports, for each position in the universe, the length of the
// covering range that extends furthest before being interrupted by a gap
// — used to answer "what is the longest run of ambiguity-free symbols
// starting here" queries in O(n) via two passes. Window returns a slice
// indexed by position - universe.Lo giving the maximum extent.
func (c *Cover[T]) Window() []T {
	n := int(c.Universe.Size())
	out := make([]T, n)
	// mark covered positions
	covered := make([]bool, n)
	for _, r := range c.Ranges {
		for x := r.Lo; x < r.Hi; x++ {
			covered[x-c.Universe.Lo] = true
		}
	}
	var run T
	for i := n - 1; i >= 0; i-- {
		if covered[i] {
			run++
		} else {
			run = 0
		}
		out[i] = run
	}
	return out
}

// Each invokes fn for every element covered by c, in ascending order. It
// stops early if fn returns false.
func (c *Cover[T]) Each(fn func(x T) bool) {
	for _, r := range c.Ranges {
		for x := r.Lo; x < r.Hi; x++ {
			if !fn(x) {
				return
			}
		}
	}
}
