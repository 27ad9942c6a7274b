package component

// VariantFlies is the swarm enemy that slows and nibbles instead of hitting.
const VariantFlies = "flies"

type Enemy struct {
	Variant string
}

func (e Enemy) Flies() bool { return e.Variant == VariantFlies }

var EnemyComponent = NewComponent[Enemy]()
