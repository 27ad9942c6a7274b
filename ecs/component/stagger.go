package component

// Stagger hands an enemy's velocity to physics for a moment after a hit so a
// knockback impulse is not overwritten by steering. The invulnerable system
// counts it down and removes it.
type Stagger struct {
	Remaining float64
}

var StaggerComponent = NewComponent[Stagger]()
