package components

// FoodPellet is a single unit of food inside a heap. Pellets are owned by the
// food economy; ants and ant-eaters hold pointers to them while claiming or
// eating. Targeted is the reservation flag that keeps two ants from claiming
// the same pellet.
type FoodPellet struct {
	X, Z     float32
	Targeted bool
	Eaten    bool // set when removed from the world (picked up or consumed)
}
