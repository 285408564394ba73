package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

// AntEaterSystem runs the predators. An ant-eater spawns where it was
// summoned, presses toward the hill eating pellets and foragers on
// the way, and dies when it reaches the hill, refunding part of what
// it consumed to the ledger and levying a genome penalty on the
// colony.
type AntEaterSystem struct {
	world     *ecs.World
	rng       *rand.Rand
	ants      *AntSystem
	economy   *Economy
	obstacles *ObstacleMap

	filter *ecs.Filter3[components.Position, components.Velocity, components.AntEater]
	mapper *ecs.Map3[components.Position, components.Velocity, components.AntEater]

	toRemove []ecs.Entity
	toKill   []ecs.Entity

	// Count is the live predator count after the last Update.
	Count int
	// DeathsTotal counts predators that reached the hill.
	DeathsTotal uint32
	// PelletsEatenTotal counts pellets consumed by all predators.
	PelletsEatenTotal uint32
}

// NewAntEaterSystem wires the predator system into the world.
func NewAntEaterSystem(world *ecs.World, rng *rand.Rand, ants *AntSystem, economy *Economy, obstacles *ObstacleMap) *AntEaterSystem {
	return &AntEaterSystem{
		world:     world,
		rng:       rng,
		ants:      ants,
		economy:   economy,
		obstacles: obstacles,
		filter:    ecs.NewFilter3[components.Position, components.Velocity, components.AntEater](world),
		mapper:    ecs.NewMap3[components.Position, components.Velocity, components.AntEater](world),
	}
}

// Reset clears the live count for a new session.
func (s *AntEaterSystem) Reset() {
	s.Count = 0
	s.DeathsTotal = 0
	s.PelletsEatenTotal = 0
}

// Summon spawns one predator at the given point. Rotted heaps summon
// at their own position; the apocalypse and the create-food action
// summon at perimeter points. It arrives focused, with a low wander
// that loosens on its first unobstructed step.
func (s *AntEaterSystem) Summon(x, z float32) ecs.Entity {
	cfg := config.Cfg()

	pos := components.Position{X: x, Z: z}
	vel := components.Velocity{}
	eater := components.AntEater{WanderStrength: float32(cfg.AntEater.SpawnWander)}
	s.Count++
	return s.mapper.NewEntity(&pos, &vel, &eater)
}

// Update advances every predator by dt. Forager kills and predator
// deaths are collected during iteration and applied afterwards.
func (s *AntEaterSystem) Update(dt float64, hillOut *[]HillEvent) {
	cfg := config.Cfg()
	ec := cfg.AntEater
	maxSpeed := float32(ec.MaxSpeed)
	consumeSq := float32(ec.ConsumeRadiusSq)
	deathSq := float32(ec.DeathRadiusSq)

	s.toRemove = s.toRemove[:0]
	alive := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, eater := query.Get()
		alive++

		// Fold the outward unit vector, bent by wander noise, into the
		// previous heading. The accumulation keeps the approach curving
		// instead of twitching.
		ox, oz := normalize(pos.X, pos.Z)
		jx, jz := randUnit(s.rng)
		eater.DesiredX, eater.DesiredZ = normalize(
			eater.DesiredX-(ox+jx*eater.WanderStrength),
			eater.DesiredZ-(oz+jz*eater.WanderStrength),
		)

		*vel = Steer(*vel, eater.DesiredX, eater.DesiredZ, maxSpeed)

		if s.probeBlocked(pos, vel) {
			eater.WanderStrength += float32(ec.BlockedWanderStep)
		} else {
			eater.WanderStrength = float32(ec.BaseWander)
			pos.X += vel.X * cfg.Derived.DT32
			pos.Z += vel.Z * cfg.Derived.DT32
			s.obstacles.EnsureLot(pos.X, pos.Z)
		}

		eaten := uint32(s.economy.ConsumeAt(pos.X, pos.Z, consumeSq))
		eater.FoodEaten += eaten
		s.PelletsEatenTotal += eaten
		eater.AntsKilled += s.killNearby(*pos, consumeSq)

		if pos.OriginDistSq() <= deathSq {
			s.toRemove = append(s.toRemove, query.Entity())
			s.DeathsTotal++
			s.emitDeath(eater, hillOut)
		}
	}

	for _, e := range s.toKill {
		s.ants.Kill(e, hillOut)
	}
	s.toKill = s.toKill[:0]

	for _, e := range s.toRemove {
		s.mapper.Remove(e)
		alive--
	}
	s.Count = alive
}

// probeBlocked looks one probe length along the current velocity and
// reports whether that point is inside an obstacle.
func (s *AntEaterSystem) probeBlocked(pos *components.Position, vel *components.Velocity) bool {
	cfg := config.Cfg()
	px := pos.X + vel.X/cfg.Derived.Def32*float32(cfg.Ant.ProbeLookahead)
	pz := pos.Z + vel.Z/cfg.Derived.Def32*float32(cfg.Ant.ProbeLookahead)
	s.obstacles.EnsureLot(px, pz)
	return s.obstacles.IsObstacle(px, pz)
}

// killNearby queues every forager within radiusSq of the predator for
// removal after iteration and returns how many were caught.
func (s *AntEaterSystem) killNearby(at components.Position, radiusSq float32) uint32 {
	var caught uint32
	s.ants.Each(func(e ecs.Entity, pos *components.Position, _ *components.Velocity, _ *components.Ant) {
		if pos.DistSq(at) <= radiusSq {
			s.toKill = append(s.toKill, e)
			caught++
		}
	})
	return caught
}

// emitDeath converts a dead predator's tally into ledger refunds and
// colony penalties.
func (s *AntEaterSystem) emitDeath(eater *components.AntEater, hillOut *[]HillEvent) {
	ec := config.Cfg().AntEater

	*hillOut = append(*hillOut,
		HillEvent{Kind: EvReplenishFood, Count: int(eater.AntsKilled / ec.KillFoodDiv), Ratio: float32(ec.KillQueenRatio)},
		HillEvent{Kind: EvReplenishFood, Count: int(eater.FoodEaten / ec.EatenFoodDiv), Ratio: float32(ec.EatenQueenRatio)},
		HillEvent{Kind: EvImproveLifeExpectancy, Amount: -float32(ec.LifePenalty)},
		HillEvent{Kind: EvImproveMaxSpeed, Amount: -float32(ec.SpeedPenalty)},
	)
}

// Clear removes every predator. Used by session restart.
func (s *AntEaterSystem) Clear() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.mapper.Remove(e)
	}
	s.Count = 0
}

// Each visits every live predator. Used by rendering.
func (s *AntEaterSystem) Each(fn func(e ecs.Entity, pos *components.Position, vel *components.Velocity, eater *components.AntEater)) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, eater := query.Get()
		fn(query.Entity(), pos, vel, eater)
	}
}
