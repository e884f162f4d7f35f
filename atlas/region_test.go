package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Region_IsEmpty(t *testing.T) {
	require.True(t, Region{}.IsEmpty())
	require.True(t, Region{X: 5, Y: 5}.IsEmpty())
	require.True(t, Region{Width: 10}.IsEmpty())
	require.True(t, Region{Height: 10}.IsEmpty())
	require.False(t, Region{Width: 1, Height: 1}.IsEmpty())

	require.True(t, InvalidRegion.IsEmpty())
	require.False(t, AllocatedRegion.IsEmpty())
}

func Test_Region_SentinelsAreDistinct(t *testing.T) {
	require.NotEqual(t, InvalidRegion, AllocatedRegion)
	require.NotEqual(t, InvalidRegion, Region{})
	require.NotEqual(t, AllocatedRegion, Region{})
}

func Test_Region_Area(t *testing.T) {
	require.Equal(t, uint64(0), Region{}.Area())
	require.Equal(t, uint64(200), Region{0, 0, 10, 20}.Area())

	// Area of the sentinel must not overflow uint64.
	require.Equal(t, uint64(0xFFFFFFFE00000001), AllocatedRegion.Area())
}

func Test_Region_Contains(t *testing.T) {
	outer := Region{10, 10, 100, 50}

	require.True(t, outer.Contains(outer))
	require.True(t, outer.Contains(Region{10, 10, 1, 1}))
	require.True(t, outer.Contains(Region{109, 59, 1, 1}))
	require.False(t, outer.Contains(Region{9, 10, 1, 1}))
	require.False(t, outer.Contains(Region{10, 10, 101, 50}))
	require.False(t, outer.Contains(Region{60, 40, 100, 50}))
}

func Test_Region_Overlaps(t *testing.T) {
	a := Region{0, 0, 10, 10}

	require.True(t, a.Overlaps(a))
	require.True(t, a.Overlaps(Region{5, 5, 10, 10}))
	require.True(t, a.Overlaps(Region{9, 9, 1, 1}))

	// Shared edges are not overlap: boxes are half-open.
	require.False(t, a.Overlaps(Region{10, 0, 10, 10}))
	require.False(t, a.Overlaps(Region{0, 10, 10, 10}))
	require.False(t, a.Overlaps(Region{20, 20, 5, 5}))

	// Empty regions overlap nothing.
	require.False(t, a.Overlaps(Region{5, 5, 0, 0}))
}

func Test_Region_String(t *testing.T) {
	require.Equal(t, "[0, 30) x [0, 20)", Region{0, 0, 30, 20}.String())
	require.Equal(t, "[40, 100) x [60, 100)", Region{40, 60, 60, 40}.String())
}

func Test_Region_Ordering(t *testing.T) {
	// lessByWidth: width, then height, then x, then y.
	require.True(t, lessByWidth(Region{0, 0, 10, 50}, Region{0, 0, 20, 5}))
	require.True(t, lessByWidth(Region{0, 0, 10, 5}, Region{0, 0, 10, 6}))
	require.True(t, lessByWidth(Region{1, 0, 10, 5}, Region{2, 0, 10, 5}))
	require.True(t, lessByWidth(Region{1, 3, 10, 5}, Region{1, 4, 10, 5}))
	require.False(t, lessByWidth(Region{1, 4, 10, 5}, Region{1, 4, 10, 5}))

	// lessByHeight: height, then width, then x, then y.
	require.True(t, lessByHeight(Region{0, 0, 50, 10}, Region{0, 0, 5, 20}))
	require.True(t, lessByHeight(Region{0, 0, 5, 10}, Region{0, 0, 6, 10}))
	require.True(t, lessByHeight(Region{1, 0, 5, 10}, Region{2, 0, 5, 10}))
	require.True(t, lessByHeight(Region{1, 3, 5, 10}, Region{1, 4, 5, 10}))
}
