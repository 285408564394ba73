package components

// AntStateKind tags the forager state machine variant.
type AntStateKind uint8

const (
	// Wandering ants random-walk until a heap comes into sensing range.
	Wandering AntStateKind = iota
	// PickingFood ants head for a reserved pellet.
	PickingFood
	// CarryingFood ants head back to the hill.
	CarryingFood
)

// AntState is the forager state with its payload: the remembered pellet
// position and the reserved pellet while picking food.
type AntState struct {
	Kind             AntStateKind
	TargetX, TargetZ float32
	Pellet           *FoodPellet
}

// Same reports whether two states carry the same tag. Payloads are
// deliberately ignored; state comparisons are by variant only.
func (s AntState) Same(o AntState) bool {
	return s.Kind == o.Kind
}

// Ant holds per-forager behavior state. Position and Velocity live in their
// own components.
type Ant struct {
	DesiredX, DesiredZ float32 // steering heading, replaced each tick
	WanderStrength     float32 // live value; escalates while blocked
	Birth              float64 // simulation time at spawn, seconds
	State              AntState
	Genome             Genome // private copy, mutated at spawn
}
