package ecs

// IntersectEntities returns slot ids present in both sets, in the dense order
// of the smaller set.
func IntersectEntities(a, b *SparseSet) []entityID {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]entityID, 0, len(a.denseEntities))
	for _, id := range a.denseEntities {
		if b.has(id) {
			out = append(out, id)
		}
	}
	return out
}
