package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

// Heap is one cluster of food pellets. Pellets are stored in spawn
// order; claims always hand out the first untargeted pellet so a heap
// is consumed front to back.
type Heap struct {
	X, Z       float32
	Pellets    []*components.FoodPellet
	StartCount int
	GoneBadAt  float64
	Bad        bool
	SummonAt   float64
	Summoned   bool
}

// Economy owns every food heap in the world. It spawns heaps on a
// timer, rots them after their gone-bad delay, summons a predator for
// each rotted heap, and accelerates its own timers as the session
// wears on. It lives outside the ECS; pellets are shared with
// foragers by pointer so a pellet eaten elsewhere is observable
// through its Eaten flag.
type Economy struct {
	rng       *rand.Rand
	obstacles *ObstacleMap

	heaps []*Heap

	// RottedTotal counts heaps gone bad over the economy's lifetime.
	RottedTotal uint32

	now           float64
	spawnInterval float64
	spawnElapsed  float64
	goneBadDelay  float64
	summonDelay   float64
	accelElapsed  float64
}

// NewEconomy builds an economy with timers at their configured
// starting values. The spawn timer starts almost elapsed so the first
// wave of heaps lands moments into a session.
func NewEconomy(rng *rand.Rand, obstacles *ObstacleMap) *Economy {
	e := &Economy{rng: rng, obstacles: obstacles}
	e.Reset()
	return e
}

// Reset returns the economy to its session-start state.
func (e *Economy) Reset() {
	fc := config.Cfg().Food
	e.heaps = e.heaps[:0]
	e.RottedTotal = 0
	e.now = 0
	e.spawnInterval = fc.SpawnInterval
	e.spawnElapsed = fc.SpawnInterval * 0.99
	e.goneBadDelay = fc.GoneBadDelay
	e.summonDelay = fc.SummonDelay
	e.accelElapsed = 0
}

// Heaps exposes the live heap list for rendering and predators.
func (e *Economy) Heaps() []*Heap {
	return e.heaps
}

// PelletCount totals the pellets remaining across all heaps.
func (e *Economy) PelletCount() int {
	n := 0
	for _, h := range e.heaps {
		n += len(h.Pellets)
	}
	return n
}

// Update advances all food timers by dt and appends any predator
// summons to out.
func (e *Economy) Update(dt float64, out *[]WorldEvent) {
	cfg := config.Cfg()
	e.now += dt

	e.spawnElapsed += dt
	if e.spawnElapsed >= e.spawnInterval {
		e.spawnElapsed = 0
		waves := int(cfg.World.Border * cfg.World.Border)
		for i := 0; i < waves; i++ {
			e.spawnWave()
		}
	}

	e.accelElapsed += dt
	if e.accelElapsed >= cfg.Food.AccelInterval {
		e.accelElapsed = 0
		e.accelerate()
	}

	kept := e.heaps[:0]
	for _, h := range e.heaps {
		if !h.Bad && e.now >= h.GoneBadAt {
			e.rot(h)
		}
		if h.Bad && !h.Summoned && e.now >= h.SummonAt {
			h.Summoned = true
			*out = append(*out, WorldEvent{Kind: EvSummonPredator, X: h.X, Z: h.Z})
		}
		// An exhausted heap despawns, pending summon included.
		if len(h.Pellets) == 0 {
			continue
		}
		kept = append(kept, h)
	}
	e.heaps = kept
}

// spawnWave places one heap. Most heaps land near the world rim; a
// small fraction lands at half range where young colonies can reach.
func (e *Economy) spawnWave() {
	cfg := config.Cfg()
	rangeLimit := cfg.World.Border * 10.0 / 11.0
	if e.rng.Float64() < cfg.Food.MidChance {
		rangeLimit = cfg.World.Border / 2.0
	}
	e.SpawnHeap(float32(rangeLimit))
}

// SpawnNearby places a heap within close reach of the hill. Used by
// the session's founding spawn and the create-food action.
func (e *Economy) SpawnNearby() *Heap {
	return e.SpawnHeap(float32(config.Cfg().Food.NearRange))
}

// SpawnHeap places a heap of pellets somewhere within rangeLimit of
// the hill on both axes. The center and every pellet offset are
// rejection-sampled against the obstacle map; the heap center being
// passable guarantees the pellet loop terminates.
func (e *Economy) SpawnHeap(rangeLimit float32) *Heap {
	fc := config.Cfg().Food

	var cx, cz float32
	for {
		cx = (e.rng.Float32()*2 - 1) * rangeLimit
		cz = (e.rng.Float32()*2 - 1) * rangeLimit
		e.obstacles.EnsureLot(cx, cz)
		if !e.obstacles.IsObstacle(cx, cz) {
			break
		}
	}

	count := fc.HeapMin
	if fc.HeapMax > fc.HeapMin {
		count += e.rng.Intn(fc.HeapMax - fc.HeapMin)
	}

	h := &Heap{
		X:          cx,
		Z:          cz,
		Pellets:    make([]*components.FoodPellet, 0, count),
		StartCount: count,
		GoneBadAt:  e.now + e.goneBadDelay + (e.rng.Float64()*2-1)*fc.GoneBadJitter,
	}
	spread := float32(fc.PelletSpread)
	for len(h.Pellets) < count {
		px, pz := randUnit(e.rng)
		r := spread * e.rng.Float32()
		x := cx + px*r
		z := cz + pz*r
		if e.obstacles.IsObstacle(x, z) {
			continue
		}
		h.Pellets = append(h.Pellets, &components.FoodPellet{X: x, Z: z})
	}
	e.heaps = append(e.heaps, h)
	return h
}

// rot marks a heap as gone bad: the warning phase starts and the
// predator's arrival is scheduled after a delay that shrinks for
// bigger heaps. Pellets stay collectible until the predator eats them.
func (e *Economy) rot(h *Heap) {
	fc := config.Cfg().Food
	h.Bad = true
	e.RottedTotal++
	h.SummonAt = e.now + e.summonDelay + float64(fc.HeapMax-h.StartCount)
}

// accelerate tightens the economy's timers down to their floors.
func (e *Economy) accelerate() {
	fc := config.Cfg().Food
	e.goneBadDelay = math.Max(fc.GoneBadFloor, e.goneBadDelay-fc.GoneBadStep)
	e.summonDelay = math.Max(fc.SummonFloor, e.summonDelay-fc.SummonStep)
	e.spawnInterval = math.Max(fc.SpawnIntervalFloor, e.spawnInterval-fc.SpawnIntervalStep)
}

// ClaimPellet reserves the first untargeted pellet of the nearest
// heap within sensing world units. The returned pellet stays
// in the heap until picked up or eaten; callers own releasing the
// claim on death by clearing Targeted.
func (e *Economy) ClaimPellet(pos components.Position, sensing float32) *components.FoodPellet {
	var best *Heap
	bestD := sensing * sensing
	for _, h := range e.heaps {
		if len(h.Pellets) == 0 {
			continue
		}
		d := distSq(pos.X, pos.Z, h.X, h.Z)
		if d <= bestD {
			best = h
			bestD = d
		}
	}
	if best == nil {
		return nil
	}
	for _, p := range best.Pellets {
		if !p.Targeted && !p.Eaten {
			p.Targeted = true
			return p
		}
	}
	return nil
}

// RemovePellet takes a pellet out of its heap, preserving the order
// of the remaining pellets. Unknown pellets are ignored.
func (e *Economy) RemovePellet(target *components.FoodPellet) {
	for _, h := range e.heaps {
		for i, p := range h.Pellets {
			if p == target {
				h.Pellets = append(h.Pellets[:i], h.Pellets[i+1:]...)
				return
			}
		}
	}
}

// ConsumeAt eats every pellet within radiusSq of (x, z), marking each
// as eaten so claim holders can react. Returns the number eaten.
func (e *Economy) ConsumeAt(x, z, radiusSq float32) int {
	eaten := 0
	for _, h := range e.heaps {
		kept := h.Pellets[:0]
		for _, p := range h.Pellets {
			if distSq(x, z, p.X, p.Z) <= radiusSq {
				p.Eaten = true
				eaten++
				continue
			}
			kept = append(kept, p)
		}
		h.Pellets = kept
	}
	return eaten
}
