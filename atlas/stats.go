package atlas

// managerStats holds internal operation counters.
type managerStats struct {
	AllocCalls     int // Total Allocate() calls
	AllocFails     int // Allocations that returned an empty region
	ExactFits      int // Allocations satisfied without a split
	TwoWaySplits   int // Splits producing two children
	ThreeWaySplits int // Splits producing three children
	FreeCalls      int // Total Free() calls
	Merges         int // Sibling groups merged back into their parent
}

// Stats is a snapshot of manager state and operation counters.
type Stats struct {
	Width  uint32
	Height uint32

	TotalArea   uint64
	UsedArea    uint64
	FreeArea    uint64
	Utilization float64 // UsedArea / TotalArea, 0 for a zero-area atlas

	AllocatedRegions int
	FreeRegions      int

	AllocCalls     int
	AllocFails     int
	ExactFits      int
	TwoWaySplits   int
	ThreeWaySplits int
	FreeCalls      int
	Merges         int
}

// Stats returns a snapshot of the manager's statistics.
func (m *Manager) Stats() Stats {
	total := uint64(m.width) * uint64(m.height)
	s := Stats{
		Width:  m.width,
		Height: m.height,

		TotalArea: total,
		UsedArea:  m.usedArea,
		FreeArea:  total - m.usedArea,

		AllocatedRegions: len(m.allocated),
		FreeRegions:      m.FreeRegionCount(),

		AllocCalls:     m.stats.AllocCalls,
		AllocFails:     m.stats.AllocFails,
		ExactFits:      m.stats.ExactFits,
		TwoWaySplits:   m.stats.TwoWaySplits,
		ThreeWaySplits: m.stats.ThreeWaySplits,
		FreeCalls:      m.stats.FreeCalls,
		Merges:         m.stats.Merges,
	}
	if total > 0 {
		s.Utilization = float64(m.usedArea) / float64(total)
	}
	return s
}
