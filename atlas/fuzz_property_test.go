package atlas

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fuzz_RandomAllocFree_GuardInvariants performs random alloc/free
// sequences against a small atlas and validates every structural invariant
// after each step.
func Test_Fuzz_RandomAllocFree_GuardInvariants(t *testing.T) {
	const (
		atlasW = 256
		atlasH = 256
		steps  = 500
	)

	rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

	m := New(atlasW, atlasH)
	defer func() { require.NoError(t, m.Close()) }()

	totalArea := uint64(atlasW) * uint64(atlasH)
	var outstanding []Region

	for i := 0; i < steps; i++ {
		doAlloc := len(outstanding) == 0 || rng.Intn(3) != 0

		if doAlloc {
			w := uint32(1 + rng.Intn(96))
			h := uint32(1 + rng.Intn(96))
			r := m.Allocate(w, h)
			if r.IsEmpty() {
				t.Logf("step %d: Allocate(%d, %d) failed (fragmented), %d outstanding",
					i, w, h, len(outstanding))
			} else {
				require.Equal(t, w, r.Width)
				require.Equal(t, h, r.Height)
				outstanding = append(outstanding, r)
			}
		} else {
			idx := rng.Intn(len(outstanding))
			mustFree(t, m, &outstanding[idx])
			outstanding = append(outstanding[:idx], outstanding[idx+1:]...)
		}

		require.NoError(t, m.Verify(), "inconsistent after step %d", i)

		// Conservation: allocated area plus free area covers the atlas
		// exactly at every quiescent point.
		s := m.Stats()
		require.Equal(t, totalArea, s.UsedArea+freeAreaSum(m))
		require.Equal(t, len(outstanding), s.AllocatedRegions)
	}

	// Outstanding regions must be pairwise disjoint.
	for i := range outstanding {
		for j := i + 1; j < len(outstanding); j++ {
			require.False(t, outstanding[i].Overlaps(outstanding[j]))
		}
	}

	// Draining every allocation restores the initial state no matter what
	// order the fuzz loop left things in.
	rng.Shuffle(len(outstanding), func(i, j int) {
		outstanding[i], outstanding[j] = outstanding[j], outstanding[i]
	})
	for i := range outstanding {
		mustFree(t, m, &outstanding[i])
	}
	requireInitialState(t, m)
}

// Test_Fuzz_ChurnConvergesToSingleRegion drives a tighter alloc-heavy loop
// until the atlas fills, then drains it, a few times over.
func Test_Fuzz_ChurnConvergesToSingleRegion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	m := New(128, 128)
	defer func() { require.NoError(t, m.Close()) }()

	for round := 0; round < 3; round++ {
		var outstanding []Region

		// Fill until allocation fails a few times in a row.
		fails := 0
		for fails < 5 {
			w := uint32(8 + rng.Intn(40))
			h := uint32(8 + rng.Intn(40))
			r := m.Allocate(w, h)
			if r.IsEmpty() {
				fails++
				continue
			}
			fails = 0
			outstanding = append(outstanding, r)
		}
		require.NotEmpty(t, outstanding)
		require.NoError(t, m.Verify())
		t.Logf("round %d: filled with %d regions, utilization %.2f",
			round, len(outstanding), m.Stats().Utilization)

		for i := range outstanding {
			mustFree(t, m, &outstanding[i])
		}
		requireInitialState(t, m)
	}
}
