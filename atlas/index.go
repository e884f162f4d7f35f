package atlas

import "github.com/google/btree"

// btreeDegree is the branching factor of the free-region B-trees. Free sets
// stay small (hundreds of entries at heavy fragmentation), so a modest
// degree keeps nodes cache-friendly.
const btreeDegree = 8

// freeIndex is an ordered index over free leaves, keyed by region. Two
// instances exist per manager: one ordered by (width, height, x, y) and one
// by (height, width, x, y). Full-tuple keys are unique because the partition
// is disjoint.
type freeIndex struct {
	tree *btree.BTreeG[*node]
}

func newFreeIndex(less func(a, b Region) bool) *freeIndex {
	return &freeIndex{
		tree: btree.NewG(btreeDegree, func(a, b *node) bool {
			return less(a.region, b.region)
		}),
	}
}

// insert adds n to the index. Returns false if a node with an equal region
// key was already present (the old entry is kept out of the tree, which is
// a consistency violation the caller reports).
func (ix *freeIndex) insert(n *node) bool {
	_, replaced := ix.tree.ReplaceOrInsert(n)
	return !replaced
}

// remove deletes the entry keyed by n's region. Returns false if no such
// entry existed.
func (ix *freeIndex) remove(n *node) bool {
	_, removed := ix.tree.Delete(n)
	return removed
}

func (ix *freeIndex) len() int {
	return ix.tree.Len()
}

// has reports whether a node with the exact region key is present.
func (ix *freeIndex) has(r Region) bool {
	_, ok := ix.tree.Get(&node{region: r})
	return ok
}

// ascendFrom visits entries ordered at or after the pivot region until fn
// returns false.
func (ix *freeIndex) ascendFrom(pivot Region, fn func(*node) bool) {
	ix.tree.AscendGreaterOrEqual(&node{region: pivot}, fn)
}

// regions returns a snapshot of all keys in index order.
func (ix *freeIndex) regions() []Region {
	out := make([]Region, 0, ix.tree.Len())
	ix.tree.Ascend(func(n *node) bool {
		out = append(out, n.region)
		return true
	})
	return out
}

func (ix *freeIndex) clear() {
	ix.tree.Clear(false)
}
