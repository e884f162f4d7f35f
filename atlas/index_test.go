package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIndex(less func(a, b Region) bool, regions ...Region) (*freeIndex, []*node) {
	ix := newFreeIndex(less)
	nodes := make([]*node, len(regions))
	for i, r := range regions {
		nodes[i] = &node{region: r}
		ix.insert(nodes[i])
	}
	return ix, nodes
}

func Test_FreeIndex_OrdersByPrimaryDimension(t *testing.T) {
	ix, _ := newTestIndex(lessByWidth,
		Region{0, 0, 30, 10},
		Region{0, 20, 10, 50},
		Region{0, 40, 20, 5},
	)

	require.Equal(t, []Region{
		{0, 20, 10, 50},
		{0, 40, 20, 5},
		{0, 0, 30, 10},
	}, ix.regions())
}

func Test_FreeIndex_BreaksTiesOnSecondaryFields(t *testing.T) {
	// Same width everywhere: order falls back to height, then x, then y.
	ix, _ := newTestIndex(lessByWidth,
		Region{5, 0, 10, 30},
		Region{0, 9, 10, 20},
		Region{3, 0, 10, 20},
		Region{0, 2, 10, 20},
	)

	require.Equal(t, []Region{
		{0, 2, 10, 20},
		{0, 9, 10, 20},
		{3, 0, 10, 20},
		{5, 0, 10, 30},
	}, ix.regions())
}

func Test_FreeIndex_InsertRejectsDuplicateKey(t *testing.T) {
	ix, _ := newTestIndex(lessByWidth, Region{0, 0, 10, 10})

	require.False(t, ix.insert(&node{region: Region{0, 0, 10, 10}}))
	require.Equal(t, 1, ix.len())
}

func Test_FreeIndex_RemoveByKey(t *testing.T) {
	ix, nodes := newTestIndex(lessByWidth,
		Region{0, 0, 10, 10},
		Region{0, 10, 20, 10},
	)

	require.True(t, ix.remove(nodes[0]))
	require.False(t, ix.remove(nodes[0]), "second remove must report a missing key")
	require.Equal(t, 1, ix.len())
	require.False(t, ix.has(Region{0, 0, 10, 10}))
	require.True(t, ix.has(Region{0, 10, 20, 10}))
}

func Test_FreeIndex_AscendFromPivot(t *testing.T) {
	ix, _ := newTestIndex(lessByWidth,
		Region{0, 0, 10, 40},
		Region{0, 10, 20, 30},
		Region{0, 20, 30, 20},
		Region{0, 30, 40, 10},
	)

	// A width-only pivot sorts before every real key of that width, so
	// ascending visits all entries at least that wide.
	var seen []Region
	ix.ascendFrom(Region{Width: 20}, func(n *node) bool {
		seen = append(seen, n.region)
		return true
	})
	require.Equal(t, []Region{
		{0, 10, 20, 30},
		{0, 20, 30, 20},
		{0, 30, 40, 10},
	}, seen)

	// Stopping early works too.
	seen = seen[:0]
	ix.ascendFrom(Region{Width: 20}, func(n *node) bool {
		seen = append(seen, n.region)
		return false
	})
	require.Len(t, seen, 1)
}

func Test_FreeIndex_Clear(t *testing.T) {
	ix, _ := newTestIndex(lessByHeight,
		Region{0, 0, 10, 10},
		Region{10, 0, 10, 20},
	)

	ix.clear()
	require.Equal(t, 0, ix.len())
	require.Empty(t, ix.regions())
}
