package atlas

import (
	"fmt"
	"math"

	"github.com/joshuapare/atlaskit/internal/geom"
)

// Region is an axis-aligned rectangle within an atlas. Coordinates grow
// right and up; the covered area is the half-open box
// [X, X+Width) x [Y, Y+Height). A Region with zero width or height is empty.
type Region struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// InvalidRegion marks a region handle that has been surrendered back to the
// manager. Free overwrites the caller's handle with this value.
var InvalidRegion = Region{math.MaxUint32, math.MaxUint32, 0, 0}

// AllocatedRegion is an in-band marker for space that is owned by some
// allocation. It never appears as a real node region.
var AllocatedRegion = Region{math.MaxUint32, math.MaxUint32, math.MaxUint32, math.MaxUint32}

// IsEmpty reports whether the region covers no area.
func (r Region) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Area returns Width × Height without overflowing.
func (r Region) Area() uint64 {
	return uint64(r.Width) * uint64(r.Height)
}

// Right returns the exclusive right edge, X + Width.
func (r Region) Right() uint32 {
	return r.X + r.Width
}

// Top returns the exclusive top edge, Y + Height.
func (r Region) Top() uint32 {
	return r.Y + r.Height
}

// Contains reports whether o lies entirely within r.
func (r Region) Contains(o Region) bool {
	return geom.BoxContains(
		r.X, r.Y, r.Right(), r.Top(),
		o.X, o.Y, o.Right(), o.Top(),
	)
}

// Overlaps reports whether r and o share any area. Empty regions overlap
// nothing.
func (r Region) Overlaps(o Region) bool {
	return geom.BoxesOverlap(
		r.X, r.Y, r.Right(), r.Top(),
		o.X, o.Y, o.Right(), o.Top(),
	)
}

// String renders the region as its half-open intervals, e.g.
// "[0, 30) x [0, 20)".
func (r Region) String() string {
	return fmt.Sprintf("[%d, %d) x [%d, %d)", r.X, r.Right(), r.Y, r.Top())
}

// lessByWidth orders regions by (width, height, x, y). It is the comparator
// for the by-width free index; the full tuple makes keys unique because the
// partition is disjoint.
func lessByWidth(a, b Region) bool {
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// lessByHeight orders regions by (height, width, x, y) for the by-height
// free index.
func lessByHeight(a, b Region) bool {
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
