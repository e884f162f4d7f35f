package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustAllocate allocates and requires a non-empty placement plus a
// consistent manager afterwards.
func mustAllocate(t *testing.T, m *Manager, w, h uint32) Region {
	t.Helper()
	r := m.Allocate(w, h)
	require.False(t, r.IsEmpty(), "Allocate(%d, %d) should succeed", w, h)
	require.NoError(t, m.Verify())
	return r
}

// mustFree frees the region and requires the handle to be consumed and the
// manager to stay consistent.
func mustFree(t *testing.T, m *Manager, r *Region) {
	t.Helper()
	m.Free(r)
	require.Equal(t, InvalidRegion, *r, "Free should overwrite the handle with InvalidRegion")
	require.NoError(t, m.Verify())
}

// requireInitialState asserts the manager looks exactly like a freshly
// constructed one: a single free region covering the whole atlas and no
// allocations.
func requireInitialState(t *testing.T, m *Manager) {
	t.Helper()
	require.Equal(t, 0, m.AllocatedRegionCount())
	require.Equal(t, 1, m.FreeRegionCount())
	require.Equal(t,
		[]Region{{0, 0, m.Width(), m.Height()}},
		m.FreeRegions())
	require.NoError(t, m.Verify())
}

// freeAreaSum sums the areas of all free regions.
func freeAreaSum(m *Manager) uint64 {
	var sum uint64
	for _, r := range m.FreeRegions() {
		sum += r.Area()
	}
	return sum
}
