package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Verify_CleanManagerPasses(t *testing.T) {
	m := New(100, 100)
	defer func() { require.NoError(t, m.Close()) }()

	require.NoError(t, m.Verify())

	r := mustAllocate(t, m, 30, 30)
	require.NoError(t, m.Verify())

	mustFree(t, m, &r)
	require.NoError(t, m.Verify())
}

func Test_Verify_DetectsLeafStateMismatch(t *testing.T) {
	m := New(100, 100)
	defer func() { _ = m.Close() }()

	_ = mustAllocate(t, m, 30, 30)

	// Flip the allocated leaf to free without re-indexing: it is now
	// missing from both free indices.
	leaf := m.allocated[Region{0, 0, 30, 30}]
	require.NotNil(t, leaf)
	leaf.allocated = false

	err := m.Verify()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "IndexMismatch", verr.Type)

	leaf.allocated = true
	require.NoError(t, m.Verify())
}

func Test_Verify_DetectsMissingIndexEntry(t *testing.T) {
	m := New(100, 100)
	defer func() { _ = m.Close() }()

	// Remove the root from only one of the two free indices.
	m.freeByHeight.remove(m.root)

	err := m.Verify()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "IndexMismatch", verr.Type)
}

func Test_Verify_DetectsAreaAccountingDrift(t *testing.T) {
	m := New(100, 100)
	defer func() { _ = m.Close() }()

	_ = mustAllocate(t, m, 30, 30)

	m.usedArea += 17
	err := m.Verify()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Accounting", verr.Type)
}

func Test_Verify_DetectsCorruptPartition(t *testing.T) {
	m := New(100, 100)
	defer func() { _ = m.Close() }()

	_ = mustAllocate(t, m, 30, 30)

	// Shrink a free sibling so the children no longer tile the parent.
	// The region is patched behind the index's back, so fix it up before
	// the deferred Close.
	var victim *node
	m.root.eachChild(func(c *node) {
		if !c.allocated && victim == nil {
			victim = c
		}
	})
	require.NotNil(t, victim)

	saved := victim.region
	victim.region.Width--

	err := m.Verify()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "NodeShape", verr.Type)

	victim.region = saved
}

func Test_Verify_ClosedManagerIsVacuouslyConsistent(t *testing.T) {
	m := New(50, 50)
	require.NoError(t, m.Close())
	require.NoError(t, m.Verify())
}
