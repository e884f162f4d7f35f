package atlas

import "fmt"

// ValidationError describes a violated structural invariant found by Verify.
type ValidationError struct {
	Type    string
	Message string
	Region  Region
}

func (e *ValidationError) Error() string {
	if e.Region != InvalidRegion {
		return fmt.Sprintf("atlas: %s at %s: %s", e.Type, e.Region, e.Message)
	}
	return fmt.Sprintf("atlas: %s: %s", e.Type, e.Message)
}

// Verify walks the partition tree and checks every structural invariant:
//
//   - every internal node has 2 or 3 children that tile its region exactly,
//     pairwise disjoint and fully inside it
//   - no node is both split and allocated
//   - allocated leaves appear in the allocated map and in neither free
//     index; free leaves appear in both free indices and not in the map
//   - internal nodes appear in no index
//   - both free indices hold the same key set
//   - leaf areas sum to the full atlas area
//
// A non-nil result is a bug in the manager, not a caller error. Verify is a
// no-op on a closed manager.
func (m *Manager) Verify() error {
	if m.root == nil {
		return nil
	}

	if wl, hl := m.freeByWidth.len(), m.freeByHeight.len(); wl != hl {
		return &ValidationError{
			Type:    "IndexMismatch",
			Message: fmt.Sprintf("by-width index has %d entries, by-height has %d", wl, hl),
			Region:  InvalidRegion,
		}
	}

	counts := leafCounts{}
	if err := m.verifyNode(m.root, &counts); err != nil {
		return err
	}

	if total := uint64(m.width) * uint64(m.height); counts.area != total {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("leaf areas sum to %d, atlas area is %d", counts.area, total),
			Region:  InvalidRegion,
		}
	}
	if counts.allocated != len(m.allocated) {
		return &ValidationError{
			Type:    "IndexMismatch",
			Message: fmt.Sprintf("%d allocated leaves but %d allocated map entries", counts.allocated, len(m.allocated)),
			Region:  InvalidRegion,
		}
	}
	if counts.free != m.freeByWidth.len() {
		return &ValidationError{
			Type:    "IndexMismatch",
			Message: fmt.Sprintf("%d free leaves but %d by-width index entries", counts.free, m.freeByWidth.len()),
			Region:  InvalidRegion,
		}
	}

	for _, r := range m.freeByWidth.regions() {
		if !m.freeByHeight.has(r) {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "region present in by-width index but missing from by-height index",
				Region:  r,
			}
		}
	}

	if counts.used != m.usedArea {
		return &ValidationError{
			Type:    "Accounting",
			Message: fmt.Sprintf("allocated leaf areas sum to %d, usedArea is %d", counts.used, m.usedArea),
			Region:  InvalidRegion,
		}
	}

	return nil
}

type leafCounts struct {
	area      uint64 // sum of all leaf areas
	used      uint64 // sum of allocated leaf areas
	allocated int
	free      int
}

func (m *Manager) verifyNode(n *node, counts *leafCounts) error {
	if err := validateNode(n); err != nil {
		return err
	}

	if n.hasChildren() {
		if _, ok := m.allocated[n.region]; ok {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "internal node present in allocated map",
				Region:  n.region,
			}
		}
		if m.freeByWidth.has(n.region) || m.freeByHeight.has(n.region) {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "internal node present in a free index",
				Region:  n.region,
			}
		}
		for i := 0; i < n.numChildren; i++ {
			if err := m.verifyNode(n.child(i), counts); err != nil {
				return err
			}
		}
		return nil
	}

	// A zero-area atlas has an empty root leaf that legally appears in no
	// index.
	if n.region.IsEmpty() && n.parent == nil {
		return nil
	}

	if n.allocated {
		owner, ok := m.allocated[n.region]
		if !ok {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "allocated leaf missing from allocated map",
				Region:  n.region,
			}
		}
		if owner != n {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "allocated map entry points at a different node",
				Region:  n.region,
			}
		}
		if m.freeByWidth.has(n.region) || m.freeByHeight.has(n.region) {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "allocated leaf present in a free index",
				Region:  n.region,
			}
		}
		counts.allocated++
		counts.used += n.region.Area()
	} else {
		if _, ok := m.allocated[n.region]; ok {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "free leaf present in allocated map",
				Region:  n.region,
			}
		}
		if !m.freeByWidth.has(n.region) {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "free leaf missing from by-width index",
				Region:  n.region,
			}
		}
		if !m.freeByHeight.has(n.region) {
			return &ValidationError{
				Type:    "IndexMismatch",
				Message: "free leaf missing from by-height index",
				Region:  n.region,
			}
		}
		counts.free++
	}

	counts.area += n.region.Area()
	return nil
}

// validateNode checks a single node's local shape: child count, the
// split/allocated exclusion, and that children tile the node's region
// exactly without overlapping.
func validateNode(n *node) error {
	if n.numChildren == 1 || n.numChildren > maxChildren {
		return &ValidationError{
			Type:    "NodeShape",
			Message: fmt.Sprintf("node has %d children, expected zero or at least two", n.numChildren),
			Region:  n.region,
		}
	}
	if n.hasChildren() && n.allocated {
		return &ValidationError{
			Type:    "NodeShape",
			Message: "allocated node must not have children",
			Region:  n.region,
		}
	}
	if !n.hasChildren() {
		return nil
	}

	var area uint64
	for i := 0; i < n.numChildren; i++ {
		ci := n.child(i)
		if ci.region.IsEmpty() {
			return &ValidationError{
				Type:    "NodeShape",
				Message: "child region is empty",
				Region:  n.region,
			}
		}
		if ci.parent != n {
			return &ValidationError{
				Type:    "NodeShape",
				Message: "child does not point back at its parent",
				Region:  ci.region,
			}
		}
		if !n.region.Contains(ci.region) {
			return &ValidationError{
				Type:    "NodeShape",
				Message: fmt.Sprintf("child %s lies outside of parent region", ci.region),
				Region:  n.region,
			}
		}
		area += ci.region.Area()

		for j := i + 1; j < n.numChildren; j++ {
			cj := n.child(j)
			if ci.region.Overlaps(cj.region) {
				return &ValidationError{
					Type:    "NodeShape",
					Message: fmt.Sprintf("children %s and %s overlap", ci.region, cj.region),
					Region:  n.region,
				}
			}
		}
	}
	if area != n.region.Area() {
		return &ValidationError{
			Type:    "NodeShape",
			Message: fmt.Sprintf("children cover %d of %d parent area", area, n.region.Area()),
			Region:  n.region,
		}
	}
	return nil
}
