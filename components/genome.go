package components

// Genome is the trait bundle shared by the colony and copied to each ant at
// spawn time. It is a plain value type: once an ant is spawned its copy is
// independent of the colony genome.
type Genome struct {
	LifeExpectancy float32 `json:"life_expectancy"` // seconds
	MaxSpeed       float32 `json:"max_speed"`       // world units per second
	WanderStrength float32 `json:"wander_strength"` // random-walk bias
	FoodSensing    float32 `json:"food_sensing"`    // antenna reach, in terrain cells
}

// Add returns the component-wise sum of two genomes.
func (g Genome) Add(o Genome) Genome {
	return Genome{
		LifeExpectancy: g.LifeExpectancy + o.LifeExpectancy,
		MaxSpeed:       g.MaxSpeed + o.MaxSpeed,
		WanderStrength: g.WanderStrength + o.WanderStrength,
		FoodSensing:    g.FoodSensing + o.FoodSensing,
	}
}

// Scale returns the genome with every trait multiplied by f.
func (g Genome) Scale(f float32) Genome {
	return Genome{
		LifeExpectancy: g.LifeExpectancy * f,
		MaxSpeed:       g.MaxSpeed * f,
		WanderStrength: g.WanderStrength * f,
		FoodSensing:    g.FoodSensing * f,
	}
}
