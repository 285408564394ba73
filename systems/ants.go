package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

type deadAnt struct {
	entity ecs.Entity
	genome components.Genome
	pellet *components.FoodPellet
}

// AntSystem runs the forager population. Each tick every ant advances
// its state machine, probes the terrain ahead, steers, moves, and
// ages out. Spawns and deaths are collected during iteration and
// applied afterwards so the query never observes a mutating world.
type AntSystem struct {
	world     *ecs.World
	rng       *rand.Rand
	hill      *AntHill
	economy   *Economy
	obstacles *ObstacleMap

	filter *ecs.Filter3[components.Position, components.Velocity, components.Ant]
	mapper *ecs.Map3[components.Position, components.Velocity, components.Ant]

	now      float64
	toRemove []deadAnt

	// Population is the live forager count after the last Update.
	Population int
	// DeathsTotal counts old-age deaths over the system's lifetime.
	DeathsTotal uint32
	// KilledTotal counts foragers taken by predators.
	KilledTotal uint32
}

// NewAntSystem wires the forager system into the world.
func NewAntSystem(world *ecs.World, rng *rand.Rand, hill *AntHill, economy *Economy, obstacles *ObstacleMap) *AntSystem {
	return &AntSystem{
		world:     world,
		rng:       rng,
		hill:      hill,
		economy:   economy,
		obstacles: obstacles,
		filter:    ecs.NewFilter3[components.Position, components.Velocity, components.Ant](world),
		mapper:    ecs.NewMap3[components.Position, components.Velocity, components.Ant](world),
	}
}

// Reset clears the system clock for a new session. Entities are
// removed by the game's session reset, not here.
func (s *AntSystem) Reset() {
	s.now = 0
	s.Population = 0
	s.DeathsTotal = 0
	s.KilledTotal = 0
}

// Update advances every forager by dt and appends ledger events for
// deaths to out.
func (s *AntSystem) Update(dt float64, out *[]HillEvent) {
	cfg := config.Cfg()
	s.now += dt

	s.spawnPending()

	s.toRemove = s.toRemove[:0]
	alive := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		alive++

		s.updateState(pos, ant)

		*vel = Steer(*vel, ant.DesiredX, ant.DesiredZ, ant.Genome.MaxSpeed)

		// Movement commits only when the probe ahead is clear; a
		// blocked ant holds position and turns harder next tick.
		if s.probeBlocked(pos, vel) {
			ant.WanderStrength += float32(cfg.Ant.BlockedWanderStep)
		} else {
			ant.WanderStrength = s.hill.Genome.WanderStrength
			pos.X += vel.X * cfg.Derived.DT32
			pos.Z += vel.Z * cfg.Derived.DT32
			s.obstacles.EnsureLot(pos.X, pos.Z)
		}

		if s.now-ant.Birth >= float64(ant.Genome.LifeExpectancy) {
			s.toRemove = append(s.toRemove, deadAnt{
				entity: query.Entity(),
				genome: ant.Genome,
				pellet: ant.State.Pellet,
			})
		}
	}

	for _, dead := range s.toRemove {
		if dead.pellet != nil {
			dead.pellet.Targeted = false
		}
		*out = append(*out, HillEvent{Kind: EvStoreGenome, Genome: dead.genome})
		s.mapper.Remove(dead.entity)
		s.DeathsTotal++
		alive--
	}
	s.Population = alive
}

// updateState drives the pick-up-and-deliver state machine and sets
// the ant's desired heading for this tick.
func (s *AntSystem) updateState(pos *components.Position, ant *components.Ant) {
	cfg := config.Cfg()

	switch ant.State.Kind {
	case components.Wandering:
		// Food sensing is measured in terrain cells.
		reach := ant.Genome.FoodSensing / cfg.Derived.Def32
		if p := s.economy.ClaimPellet(*pos, reach); p != nil {
			ant.State = components.AntState{
				Kind:    components.PickingFood,
				TargetX: p.X,
				TargetZ: p.Z,
				Pellet:  p,
			}
			return
		}
		dx, dz := randUnit(s.rng)
		ant.DesiredX, ant.DesiredZ = normalize(dx*ant.WanderStrength, dz*ant.WanderStrength)

	case components.PickingFood:
		p := ant.State.Pellet
		if p == nil || p.Eaten {
			ant.State = components.AntState{Kind: components.Wandering}
			return
		}
		if pos.DistSq(components.Position{X: p.X, Z: p.Z}) <= cfg.Derived.PickupRadiusSq {
			s.economy.RemovePellet(p)
			ant.State = components.AntState{Kind: components.CarryingFood}
			return
		}
		tx, tz := normalize(p.X-pos.X, p.Z-pos.Z)
		jx, jz := randUnit(s.rng)
		w := float32(cfg.Ant.TargetWeight)
		j := float32(cfg.Ant.HeadingJitter)
		ant.DesiredX = tx*w + jx*j
		ant.DesiredZ = tz*w + jz*j

	case components.CarryingFood:
		if pos.OriginDistSq() <= cfg.Derived.DeliverRadiusSq {
			s.hill.Deliver()
			ant.State = components.AntState{Kind: components.Wandering}
			return
		}
		hx, hz := normalize(-pos.X, -pos.Z)
		jx, jz := randUnit(s.rng)
		j := float32(cfg.Ant.HeadingJitter)
		ant.DesiredX = hx + jx*j
		ant.DesiredZ = hz + jz*j
	}
}

// probeBlocked looks one probe length along the current velocity and
// reports whether that point is inside an obstacle.
func (s *AntSystem) probeBlocked(pos *components.Position, vel *components.Velocity) bool {
	cfg := config.Cfg()
	px := pos.X + vel.X/cfg.Derived.Def32*float32(cfg.Ant.ProbeLookahead)
	pz := pos.Z + vel.Z/cfg.Derived.Def32*float32(cfg.Ant.ProbeLookahead)
	s.obstacles.EnsureLot(px, pz)
	return s.obstacles.IsObstacle(px, pz)
}

// spawnPending materializes the waves financed or commanded since the
// last tick. Each newborn gets a mutated copy of the colony genome
// but wanders with the colony's live wander strength.
func (s *AntSystem) spawnPending() {
	n := s.hill.TakePendingSpawns()
	for i := 0; i < n; i++ {
		s.Spawn()
	}
}

// Spawn places one forager at the hill with a freshly mutated genome.
func (s *AntSystem) Spawn() ecs.Entity {
	genome := s.hill.MutateSpawn()
	dx, dz := randUnit(s.rng)

	pos := components.Position{X: dx * 0.05, Z: dz * 0.05}
	vel := components.Velocity{}
	ant := components.Ant{
		WanderStrength: s.hill.Genome.WanderStrength,
		Birth:          s.now,
		State:          components.AntState{Kind: components.Wandering},
		Genome:         genome,
	}
	s.hill.TotalSpawned++
	s.Population++
	return s.mapper.NewEntity(&pos, &vel, &ant)
}

// Clear removes every forager. Used by session restart.
func (s *AntSystem) Clear() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.mapper.Remove(e)
	}
	s.Population = 0
}

// Each visits every live forager. Used by rendering and the predator
// system.
func (s *AntSystem) Each(fn func(e ecs.Entity, pos *components.Position, vel *components.Velocity, ant *components.Ant)) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		fn(query.Entity(), pos, vel, ant)
	}
}

// Kill removes a forager immediately, releasing any pellet claim and
// storing its genome. Used by the predator system after its own
// iteration has finished.
func (s *AntSystem) Kill(e ecs.Entity, out *[]HillEvent) {
	if !s.world.Alive(e) {
		return
	}
	_, _, ant := s.mapper.Get(e)
	if ant.State.Pellet != nil {
		ant.State.Pellet.Targeted = false
	}
	*out = append(*out, HillEvent{Kind: EvStoreGenome, Genome: ant.Genome})
	s.mapper.Remove(e)
	s.KilledTotal++
	s.Population--
}
