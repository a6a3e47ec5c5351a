package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/interval"
)

func TestRangeIntersectUnion(t *testing.T) {
	a := interval.Range[uint32]{Lo: 0, Hi: 10}
	b := interval.Range[uint32]{Lo: 5, Hi: 15}

	assert.Equal(t, interval.Range[uint32]{Lo: 5, Hi: 10}, a.Intersect(b))
	assert.Equal(t, interval.Range[uint32]{Lo: 0, Hi: 15}, a.Union(b))
}

func TestRangeIncludes(t *testing.T) {
	outer := interval.Range[uint32]{Lo: 0, Hi: 10}
	inner := interval.Range[uint32]{Lo: 2, Hi: 5}
	assert.True(t, outer.Includes(inner))
	assert.False(t, inner.Includes(outer))
}

func TestRangeComplement(t *testing.T) {
	universe := interval.Range[uint32]{Lo: 0, Hi: 10}
	middle := interval.Range[uint32]{Lo: 3, Hi: 6}

	got := middle.Complement(universe)
	require.Len(t, got, 2)
	assert.Equal(t, interval.Range[uint32]{Lo: 0, Hi: 3}, got[0])
	assert.Equal(t, interval.Range[uint32]{Lo: 6, Hi: 10}, got[1])
}

func TestCoverInsertMergesAdjacent(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 100})
	c.Insert(interval.Range[uint32]{Lo: 0, Hi: 10})
	c.Insert(interval.Range[uint32]{Lo: 10, Hi: 20})
	c.Insert(interval.Range[uint32]{Lo: 50, Hi: 60})

	require.Len(t, c.Ranges, 2)
	assert.Equal(t, interval.Range[uint32]{Lo: 0, Hi: 20}, c.Ranges[0])
	assert.Equal(t, interval.Range[uint32]{Lo: 50, Hi: 60}, c.Ranges[1])
	assert.EqualValues(t, 30, c.Length())
}

func TestCoverContains(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 100})
	c.Insert(interval.Range[uint32]{Lo: 10, Hi: 20})

	assert.True(t, c.Contains(15))
	assert.False(t, c.Contains(25))
}

func TestCoverComplement(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 20})
	c.Insert(interval.Range[uint32]{Lo: 5, Hi: 10})

	comp := c.Complement()
	require.Len(t, comp.Ranges, 2)
	assert.Equal(t, interval.Range[uint32]{Lo: 0, Hi: 5}, comp.Ranges[0])
	assert.Equal(t, interval.Range[uint32]{Lo: 10, Hi: 20}, comp.Ranges[1])
}

// TestCoverFlipUniverse checks that flipping a cover twice, relative to
// the same universe, restores the original.
func TestCoverFlipUniverse(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 20})
	c.Insert(interval.Range[uint32]{Lo: 3, Hi: 7})
	c.Insert(interval.Range[uint32]{Lo: 12, Hi: 15})

	flipped := c.Flip()
	assert.Equal(t, c.Universe, flipped.Universe)

	back := flipped.Flip()
	assert.Equal(t, c.Ranges, back.Ranges)
}

func TestCoverFlipSingleRange(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 10})
	c.Insert(interval.Range[uint32]{Lo: 2, Hi: 4})

	flipped := c.Flip()
	require.Len(t, flipped.Ranges, 1)
	assert.Equal(t, interval.Range[uint32]{Lo: 6, Hi: 8}, flipped.Ranges[0])
}

func TestCoverAmplify(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 100})
	c.Insert(interval.Range[uint32]{Lo: 20, Hi: 25})
	c.Insert(interval.Range[uint32]{Lo: 30, Hi: 35})

	c.Amplify(5)

	require.Len(t, c.Ranges, 1)
	assert.Equal(t, interval.Range[uint32]{Lo: 15, Hi: 40}, c.Ranges[0])
}

func TestCoverAmplifyClampsToUniverse(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 10})
	c.Insert(interval.Range[uint32]{Lo: 0, Hi: 2})

	c.Amplify(5)

	require.Len(t, c.Ranges, 1)
	assert.Equal(t, interval.Range[uint32]{Lo: 0, Hi: 7}, c.Ranges[0])
}

func TestCoverWindow(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 6})
	c.Insert(interval.Range[uint32]{Lo: 0, Hi: 4})

	w := c.Window()
	require.Len(t, w, 6)
	assert.EqualValues(t, []uint32{4, 3, 2, 1, 0, 0}, w)
}

func TestCoverShift(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 10})
	c.Insert(interval.Range[uint32]{Lo: 2, Hi: 4})
	c.Shift(100)

	assert.Equal(t, interval.Range[uint32]{Lo: 100, Hi: 110}, c.Universe)
	require.Len(t, c.Ranges, 1)
	assert.Equal(t, interval.Range[uint32]{Lo: 102, Hi: 104}, c.Ranges[0])
}

func TestCoverEach(t *testing.T) {
	c := interval.NewCover[uint32](interval.Range[uint32]{Lo: 0, Hi: 10})
	c.Insert(interval.Range[uint32]{Lo: 2, Hi: 5})

	var got []uint32
	c.Each(func(x uint32) bool {
		got = append(got, x)
		return true
	})
	assert.EqualValues(t, []uint32{2, 3, 4}, got)
}
