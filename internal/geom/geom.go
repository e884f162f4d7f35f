// Package geom holds small shared geometry helpers for atlas partitioning.
package geom

// BoxesOverlap reports whether the half-open boxes [ax0, ax1) x [ay0, ay1)
// and [bx0, bx1) x [by0, by1) share any area. Degenerate (zero-extent) boxes
// overlap nothing.
func BoxesOverlap(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1 uint32) bool {
	return ax0 < bx1 && bx0 < ax1 && ay0 < by1 && by0 < ay1
}

// BoxContains reports whether the half-open box [ox0, ox1) x [oy0, oy1) lies
// entirely within [ix0, ix1) x [iy0, iy1).
func BoxContains(ix0, iy0, ix1, iy1, ox0, oy0, ox1, oy1 uint32) bool {
	return ox0 >= ix0 && ox1 <= ix1 && oy0 >= iy0 && oy1 <= iy1
}
