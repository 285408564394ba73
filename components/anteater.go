package components

// AntEater holds per-predator behavior state. Ant-eaters drift toward the
// hill, eating pellets and ants along the way, and die when they reach it.
type AntEater struct {
	DesiredX, DesiredZ float32
	WanderStrength     float32
	FoodEaten          uint32
	AntsKilled         uint32
}
