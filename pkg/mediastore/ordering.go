package mediastore

// OrderingPolicy assigns display positions and the primary flag when assets
// are added or removed. Pure logic, no I/O.
type OrderingPolicy struct{}

// AssignOnCreate returns positions 0..n-1 in input order and the index of
// the asset to designate primary. primaryIndex is -1 when n is zero; some
// content records carry no images at all.
func (OrderingPolicy) AssignOnCreate(n int) (positions []int, primaryIndex int) {
	positions = make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	if n == 0 {
		return positions, -1
	}
	return positions, 0
}

// AssignOnAppend returns positions existingMax+1..existingMax+n. Appended
// assets never reuse or renumber existing positions and are never made
// primary automatically.
func (OrderingPolicy) AssignOnAppend(existingMax, n int) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = existingMax + 1 + i
	}
	return positions
}

// RecomputeAfterRemoval returns the surviving positions unchanged. Survivors
// are not renumbered after a removal: rendering orders by ascending position,
// so gaps are harmless, and leaving them avoids a write per sibling.
func (OrderingPolicy) RecomputeAfterRemoval(remaining []int) []int {
	return remaining
}
