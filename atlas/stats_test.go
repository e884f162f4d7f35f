package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Stats_TracksOperationCounts(t *testing.T) {
	m := New(100, 100)
	defer func() { require.NoError(t, m.Close()) }()

	a := mustAllocate(t, m, 100, 100) // exact fit
	mustFree(t, m, &a)

	b := mustAllocate(t, m, 100, 60) // two-way split
	c := mustAllocate(t, m, 40, 30)  // three-way split of the leftover
	require.True(t, m.Allocate(100, 100).IsEmpty())

	s := m.Stats()
	require.Equal(t, 4, s.AllocCalls)
	require.Equal(t, 1, s.AllocFails)
	require.Equal(t, 1, s.ExactFits)
	require.Equal(t, 1, s.TwoWaySplits)
	require.Equal(t, 1, s.ThreeWaySplits)
	require.Equal(t, 1, s.FreeCalls)
	require.Equal(t, 0, s.Merges) // freeing the exact fit merged nothing; root had no children
	require.Equal(t, 2, s.AllocatedRegions)

	mustFree(t, m, &c)
	mustFree(t, m, &b)

	s = m.Stats()
	require.Equal(t, 3, s.FreeCalls)
	require.Equal(t, 2, s.Merges)
	require.Equal(t, 0, s.AllocatedRegions)
	require.Equal(t, 1, s.FreeRegions)
}

func Test_Stats_AreaAccounting(t *testing.T) {
	m := New(100, 100)
	defer func() { require.NoError(t, m.Close()) }()

	s := m.Stats()
	require.Equal(t, uint64(10000), s.TotalArea)
	require.Equal(t, uint64(0), s.UsedArea)
	require.Equal(t, uint64(10000), s.FreeArea)
	require.Equal(t, 0.0, s.Utilization)

	r := mustAllocate(t, m, 50, 40)
	s = m.Stats()
	require.Equal(t, uint64(2000), s.UsedArea)
	require.Equal(t, uint64(8000), s.FreeArea)
	require.InDelta(t, 0.2, s.Utilization, 1e-9)

	mustFree(t, m, &r)
	s = m.Stats()
	require.Equal(t, uint64(0), s.UsedArea)
	require.Equal(t, 0.0, s.Utilization)
}

func Test_Stats_ZeroAreaAtlas(t *testing.T) {
	m := New(0, 100)
	defer func() { require.NoError(t, m.Close()) }()

	s := m.Stats()
	require.Equal(t, uint64(0), s.TotalArea)
	require.Equal(t, 0.0, s.Utilization)
	require.Equal(t, 0, s.FreeRegions)
}
