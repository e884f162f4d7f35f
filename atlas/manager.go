package atlas

import (
	"fmt"
	"os"
	"sort"
)

// Debug flag - set to true to enable the expensive structural panics in
// node.go (compile-time toggle).
const debugAtlas = false

// Runtime debug flags, controlled by environment variables.
var (
	// ATLAS_LOG_ALLOC logs allocation decisions to stderr.
	logAlloc = os.Getenv("ATLAS_LOG_ALLOC") != ""

	// ATLAS_VERIFY runs the full consistency checker after every mutation.
	verifyEveryOp = os.Getenv("ATLAS_VERIFY") != ""
)

// Manager sub-divides a fixed rectangular atlas into non-overlapping
// allocated regions and reclaims their space on Free. It is not safe for
// concurrent use.
type Manager struct {
	width  uint32
	height uint32

	// root of the partition tree. nil after Close.
	root *node

	// Ordered indices over free leaves. Every free leaf appears in both;
	// internal and allocated nodes appear in neither.
	freeByWidth  *freeIndex
	freeByHeight *freeIndex

	// Exact-key lookup from an allocated region (as returned to the
	// caller) to its owning leaf.
	allocated map[Region]*node

	// Sum of allocated leaf areas, maintained incrementally.
	usedArea uint64

	stats managerStats
}

// New creates a manager whose atlas is a single free region covering
// (0, 0, width, height). A zero dimension is accepted but such a manager
// can never satisfy an allocation.
func New(width, height uint32) *Manager {
	m := &Manager{
		width:        width,
		height:       height,
		freeByWidth:  newFreeIndex(lessByWidth),
		freeByHeight: newFreeIndex(lessByHeight),
		allocated:    make(map[Region]*node),
	}
	m.root = &node{region: Region{0, 0, width, height}}

	// An empty region is not a legal index key, so a zero-area atlas
	// leaves both free indices empty.
	if !m.root.region.IsEmpty() {
		m.registerNode(m.root)
	}
	return m
}

// Width returns the atlas width.
func (m *Manager) Width() uint32 { return m.width }

// Height returns the atlas height.
func (m *Manager) Height() uint32 { return m.height }

// Allocate reserves a width×height rectangle and returns its placement.
// The returned region lies fully within the atlas and is disjoint from every
// other currently-allocated region. An empty Region is returned when no free
// region is large enough. Zero dimensions are a caller error, reported to
// stderr, and also return an empty Region.
func (m *Manager) Allocate(width, height uint32) Region {
	m.stats.AllocCalls++

	if width == 0 || height == 0 {
		violationf("Allocate(%d, %d): dimensions must be positive", width, height)
		m.stats.AllocFails++
		return Region{}
	}
	if m.root == nil {
		violationf("Allocate(%d, %d): manager is closed", width, height)
		m.stats.AllocFails++
		return Region{}
	}

	src := m.findBestFit(width, height)
	if src == nil {
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ATLAS] Allocate(%d, %d): no free region large enough (%d free)\n",
				width, height, m.freeByWidth.len())
		}
		m.stats.AllocFails++
		return Region{}
	}

	m.unregisterNode(src)

	r := src.region
	switch {
	case r.Width > width && r.Height > height:
		// Both dimensions exceed the request: three-way split, cutting
		// the full strip along the longer axis so the leftovers stay as
		// square as possible.
		if r.Width > r.Height {
			//    _____________________
			//   |       |             |
			//   |   B   |             |
			//   |_______|      A      |
			//   |       |             |
			//   | placed|             |
			//   |_______|_____________|
			src.split(
				Region{r.X, r.Y, width, height},
				Region{r.X + width, r.Y, r.Width - width, r.Height},
				Region{r.X, r.Y + height, width, r.Height - height},
			)
		} else {
			//   _______________
			//  |               |
			//  |       A       |
			//  |_______ _______|
			//  |       |       |
			//  | placed|   B   |
			//  |_______|_______|
			src.split(
				Region{r.X, r.Y, width, height},
				Region{r.X, r.Y + height, r.Width, r.Height - height},
				Region{r.X + width, r.Y, r.Width - width, height},
			)
		}
		m.stats.ThreeWaySplits++

	case r.Width > width:
		//   _______ __________
		//  |       |          |
		//  | placed|    A     |
		//  |_______|__________|
		src.split(
			Region{r.X, r.Y, width, height},
			Region{r.X + width, r.Y, r.Width - width, r.Height},
		)
		m.stats.TwoWaySplits++

	case r.Height > height:
		//    _______
		//   |       |
		//   |   A   |
		//   |_______|
		//   |       |
		//   | placed|
		//   |_______|
		src.split(
			Region{r.X, r.Y, width, height},
			Region{r.X, r.Y + height, r.Width, r.Height - height},
		)
		m.stats.TwoWaySplits++

	default:
		m.stats.ExactFits++
	}

	var placed *node
	if src.hasChildren() {
		src.child(0).allocated = true
		src.eachChild(func(c *node) {
			m.registerNode(c)
		})
		placed = src.child(0)
	} else {
		src.allocated = true
		m.registerNode(src)
		placed = src
	}

	m.usedArea += placed.region.Area()

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ATLAS] Allocate(%d, %d) -> %s (source %s, %d free left)\n",
			width, height, placed.region, r, m.freeByWidth.len())
	}
	if verifyEveryOp {
		m.mustVerify()
	}

	return placed.region
}

// findBestFit probes both free indices and returns the free leaf with the
// smallest area that contains a width×height rectangle, or nil.
//
// The by-width index is ordered (width, height, x, y): starting from the
// first key with sufficient width, entries are skipped while their height is
// too small. The by-height probe mirrors this with the dimensions swapped.
// On an exact area tie the by-width candidate wins, which makes the choice
// deterministic given the index ordering.
func (m *Manager) findBestFit(width, height uint32) *node {
	var byW, byH *node

	m.freeByWidth.ascendFrom(Region{Width: width}, func(n *node) bool {
		if n.region.Height < height {
			return true
		}
		byW = n
		return false
	})
	m.freeByHeight.ascendFrom(Region{Height: height}, func(n *node) bool {
		if n.region.Width < width {
			return true
		}
		byH = n
		return false
	})

	switch {
	case byW != nil && byH != nil:
		if byH.region.Area() < byW.region.Area() {
			return byH
		}
		return byW
	case byW != nil:
		return byW
	case byH != nil:
		return byH
	default:
		return nil
	}
}

// Free returns a previously allocated region to the atlas and merges free
// siblings back together bottom-up. The region must be exactly the value
// Allocate returned. On success the caller's handle is overwritten with
// InvalidRegion. Freeing an unknown region is a caller error: it is
// reported to stderr and the manager state is left untouched.
func (m *Manager) Free(r *Region) {
	m.stats.FreeCalls++

	if r == nil {
		violationf("Free(nil)")
		return
	}
	if r.IsEmpty() || *r == AllocatedRegion {
		violationf("Free(%s): not a valid allocated region", *r)
		return
	}
	if m.root == nil {
		violationf("Free(%s): manager is closed", *r)
		return
	}

	n, ok := m.allocated[*r]
	if !ok {
		violationf("Free(%s): region not found among allocated regions", *r)
		return
	}

	m.unregisterNode(n)
	n.allocated = false
	m.registerNode(n)
	m.usedArea -= n.region.Area()

	// Walk toward the root, merging every sibling group that has become
	// all-free. This restores the canonical form: once a split's placed
	// rectangle is freed and no sub-split survives inside its siblings,
	// the tree returns to its pre-allocation shape.
	for p := n.parent; p != nil && p.canMergeChildren(); p = p.parent {
		p.eachChild(func(c *node) {
			m.unregisterNode(c)
		})
		p.mergeChildren()
		m.registerNode(p)
		m.stats.Merges++
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ATLAS] Free(%s) (%d allocated, %d free left)\n",
			*r, len(m.allocated), m.freeByWidth.len())
	}
	if verifyEveryOp {
		m.mustVerify()
	}

	*r = InvalidRegion
}

// Close releases the manager. Every allocation must have been freed first:
// a healthy manager closes with the tree back to a single free root leaf.
// Closing with regions outstanding is a caller error; it is reported,
// ErrRegionsOutstanding is returned, and memory is released regardless.
// Close is idempotent.
func (m *Manager) Close() error {
	if m.root == nil {
		return nil
	}

	var err error
	if m.root.allocated || m.root.hasChildren() || len(m.allocated) != 0 {
		violationf("Close: %d regions still allocated", len(m.allocated))
		err = ErrRegionsOutstanding
	}

	m.root = nil
	m.freeByWidth.clear()
	m.freeByHeight.clear()
	m.allocated = nil
	m.usedArea = 0
	return err
}

// registerNode places a leaf into the allocated map iff it is allocated,
// else into both free indices. Together with unregisterNode this is the only
// place the indices are mutated.
func (m *Manager) registerNode(n *node) {
	if debugAtlas {
		if n.hasChildren() {
			panic("atlas: registering node that has children")
		}
		if n.region.IsEmpty() {
			panic("atlas: registering node with empty region")
		}
	}

	if n.allocated {
		if _, exists := m.allocated[n.region]; exists {
			violationf("register %s: already present in allocated map", n.region)
		}
		m.allocated[n.region] = n
	} else {
		if !m.freeByWidth.insert(n) {
			violationf("register %s: already present in by-width index", n.region)
		}
		if !m.freeByHeight.insert(n) {
			violationf("register %s: already present in by-height index", n.region)
		}
	}
}

// unregisterNode is the exact inverse of registerNode.
func (m *Manager) unregisterNode(n *node) {
	if debugAtlas {
		if n.hasChildren() {
			panic("atlas: unregistering node that has children")
		}
		if n.region.IsEmpty() {
			panic("atlas: unregistering node with empty region")
		}
	}

	if n.allocated {
		if _, exists := m.allocated[n.region]; !exists {
			violationf("unregister %s: not found in allocated map", n.region)
		}
		delete(m.allocated, n.region)
	} else {
		if !m.freeByWidth.remove(n) {
			violationf("unregister %s: not found in by-width index", n.region)
		}
		if !m.freeByHeight.remove(n) {
			violationf("unregister %s: not found in by-height index", n.region)
		}
	}
}

// FreeRegionCount returns the number of free leaves.
func (m *Manager) FreeRegionCount() int {
	if m.root == nil {
		return 0
	}
	return m.freeByWidth.len()
}

// AllocatedRegionCount returns the number of allocated leaves.
func (m *Manager) AllocatedRegionCount() int {
	return len(m.allocated)
}

// FreeRegions returns a snapshot of all free regions in by-width index
// order.
func (m *Manager) FreeRegions() []Region {
	if m.root == nil {
		return nil
	}
	return m.freeByWidth.regions()
}

// AllocatedRegions returns a snapshot of all allocated regions, sorted by
// (y, x) for deterministic output.
func (m *Manager) AllocatedRegions() []Region {
	out := make([]Region, 0, len(m.allocated))
	for r := range m.allocated {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// violationf reports a caller contract violation to stderr. Violations never
// mutate manager state beyond the reporting itself; the offending operation
// becomes a no-op.
func violationf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ATLAS] contract violation: "+format+"\n", args...)
}

// mustVerify panics if the consistency checker finds a violated invariant.
// Used with ATLAS_VERIFY in tests; an inconsistency here is a bug in the
// manager itself, never a caller error.
func (m *Manager) mustVerify() {
	if err := m.Verify(); err != nil {
		panic(err)
	}
}
