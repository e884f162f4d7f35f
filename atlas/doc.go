// Package atlas implements a dynamic 2D rectangle allocator.
//
// # Overview
//
// A Manager sub-divides a fixed width×height area (the "atlas") into
// non-overlapping axis-aligned regions. Allocation finds the best-fitting
// free region, splits it if necessary, and returns the placed rectangle.
// Freeing a region returns its space to the free set and merges adjacent
// free siblings back together, so the partition converges to a canonical,
// maximally-merged form.
//
// Internally the manager maintains a partition tree whose leaves tile the
// atlas exactly. Each leaf is either allocated or free. Free leaves are
// indexed twice - once ordered by width and once ordered by height - so a
// request for w×h can probe both orderings and pick the candidate with the
// smallest area (best-fit).
//
// # Usage Example
//
//	m := atlas.New(1024, 1024)
//
//	r := m.Allocate(128, 64)
//	if r.IsEmpty() {
//	    // atlas is too fragmented or too small for the request
//	}
//
//	// ... use r.X, r.Y, r.Width, r.Height ...
//
//	m.Free(&r) // r becomes atlas.InvalidRegion
//
//	if err := m.Close(); err != nil {
//	    // regions were still outstanding
//	}
//
// # Allocation Policy
//
// Allocate probes the by-width index for the narrowest free region at least
// w wide and h tall, probes the by-height index for the shortest free region
// at least h tall and w wide, and uses whichever candidate has the smaller
// area. Ties go to the by-width candidate, so results are deterministic for
// a given sequence of calls.
//
// When the chosen region is larger than the request, it is split into two or
// three children; the placed rectangle is always the first child, anchored at
// the region's origin. Splitting along the longer axis first keeps the
// remaining free strips as square as possible.
//
// # Freeing and Coalescing
//
// Free looks the region up by exact value, so the caller must pass back the
// same rectangle Allocate returned. After marking the leaf free, the manager
// walks toward the root merging any node whose children are all free leaves.
// Once every allocation has been freed, the manager is back to a single free
// region covering the whole atlas.
//
// # Thread Safety
//
// Manager instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Debugging
//
// Set ATLAS_LOG_ALLOC to log allocation decisions to stderr. Set
// ATLAS_VERIFY to run the full consistency checker after every mutation
// (expensive; intended for tests). Verify is also exported for direct use.
package atlas
