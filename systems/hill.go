package systems

import (
	"math/rand"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

// AntHill is the colony ledger. It holds the two food stores, the
// colony genome, the genome queue fed by dead foragers, and the
// pending spawn counter consumed by the forager system. All mutation
// arrives through Apply or Deliver; nothing here touches the ECS.
type AntHill struct {
	rng *rand.Rand

	WorkerFood uint32
	QueenFood  uint32

	Genome       components.Genome
	WaveSize     float64
	MutationBias float32

	TotalSpawned   uint32
	TotalDelivered uint32

	queue         []components.Genome
	evolveElapsed float64
	pendingSpawns int
}

// NewAntHill builds a ledger seeded with the founding genome.
func NewAntHill(rng *rand.Rand) *AntHill {
	h := &AntHill{rng: rng}
	h.Reset()
	return h
}

// Reset returns the ledger to its session-start state. The starting
// worker food finances the founding wave through the regular path.
func (h *AntHill) Reset() {
	cfg := config.Cfg()
	h.WorkerFood = cfg.Hill.StartFood
	h.QueenFood = 0
	h.Genome = components.Genome{
		MaxSpeed:       float32(cfg.Genome.MaxSpeed),
		LifeExpectancy: float32(cfg.Genome.LifeExpectancy),
		WanderStrength: float32(cfg.Genome.WanderStrength),
		FoodSensing:    float32(cfg.Genome.FoodSensing),
	}
	h.WaveSize = cfg.Hill.SpawnWave
	h.MutationBias = float32(cfg.Hill.MutationBias)
	h.TotalSpawned = 0
	h.TotalDelivered = 0
	h.queue = h.queue[:0]
	h.evolveElapsed = 0
	h.pendingSpawns = 0
}

// Deliver books one unit of delivered food. A configured fraction of
// deliveries feeds the queen; the rest finances new foragers.
func (h *AntHill) Deliver() {
	h.TotalDelivered++
	if h.rng.Float64() < config.Cfg().Hill.QueenRatio {
		h.QueenFood++
		return
	}
	h.WorkerFood++
}

// Apply executes one queued ledger event.
func (h *AntHill) Apply(ev HillEvent) {
	floors := config.Cfg().Genome.Floors
	switch ev.Kind {
	case EvReplenishFood:
		for i := 0; i < ev.Count; i++ {
			if h.rng.Float64() < float64(ev.Ratio) {
				h.QueenFood++
			} else {
				h.WorkerFood++
			}
		}
		if ev.HasGenome {
			h.storeGenome(ev.Genome)
		}
	case EvRemoveFood:
		debit := uint32(ev.Amount)
		if debit > h.QueenFood {
			debit = h.QueenFood
		}
		h.QueenFood -= debit
	case EvSpawnAnts:
		h.pendingSpawns += ev.Count
	case EvImproveSpawnCount:
		h.WaveSize *= float64(ev.Amount)
	case EvImproveMaxSpeed:
		h.Genome.MaxSpeed = maxFloat(float32(floors.MaxSpeed), h.Genome.MaxSpeed+ev.Amount)
	case EvImproveLifeExpectancy:
		h.Genome.LifeExpectancy = maxFloat(float32(floors.LifeExpectancy), h.Genome.LifeExpectancy+ev.Amount)
	case EvImproveFoodSensing:
		h.Genome.FoodSensing = maxFloat(float32(floors.FoodSensing), h.Genome.FoodSensing+ev.Amount)
	case EvImproveMutation:
		h.MutationBias += ev.Amount
	case EvStoreGenome:
		h.storeGenome(ev.Genome)
	}
}

// storeGenome appends a dead forager's genome, evicting the oldest
// entry when the queue is full.
func (h *AntHill) storeGenome(g components.Genome) {
	capN := config.Cfg().Hill.GenomeQueue
	if len(h.queue) >= capN {
		h.queue = h.queue[1:]
	}
	h.queue = append(h.queue, g)
}

// QueueLen reports how many dead genomes await the next evolution.
func (h *AntHill) QueueLen() int {
	return len(h.queue)
}

// Finance converts worker food into pending spawns. At most one wave
// is financed per tick, so a large surplus drains over several ticks
// rather than dumping every wave at once.
func (h *AntHill) Finance() {
	hc := config.Cfg().Hill
	if h.WorkerFood < hc.SpawnThreshold {
		return
	}
	h.WorkerFood -= hc.SpawnThreshold
	h.pendingSpawns += int(h.WaveSize)
}

// TakePendingSpawns hands the spawn counter to the forager system and
// clears it.
func (h *AntHill) TakePendingSpawns() int {
	n := h.pendingSpawns
	h.pendingSpawns = 0
	return n
}

// EvolveProgress reports how far the evolution clock has run toward
// the next tick, in [0, 1]. Rendering shows it as a progress bar.
func (h *AntHill) EvolveProgress() float64 {
	interval := config.Cfg().Hill.EvolveInterval
	if interval <= 0 {
		return 0
	}
	return h.evolveElapsed / interval
}

// TickEvolution advances the evolution clock and evolves the colony
// genome whenever the interval elapses.
func (h *AntHill) TickEvolution(dt float64) {
	h.evolveElapsed += dt
	if h.evolveElapsed < config.Cfg().Hill.EvolveInterval {
		return
	}
	h.evolveElapsed = 0
	h.Evolve()
}

// Evolve folds the queued genomes into the colony genome as a running
// mean seeded by the current genome, drifts the result by the
// mutation bias, and clamps traits to their floors. The queue is
// consumed; with an empty queue only the drift and clamp apply.
func (h *AntHill) Evolve() {
	cfg := config.Cfg()

	mean := h.Genome
	n := float32(1)
	for _, g := range h.queue {
		n++
		mean = mean.Add(g.Add(mean.Scale(-1)).Scale(1 / n))
	}
	h.queue = h.queue[:0]

	mean.MaxSpeed += h.MutationBias * float32(cfg.Hill.BiasSpeed)
	mean.LifeExpectancy += h.MutationBias * float32(cfg.Hill.BiasLife)
	mean.FoodSensing += h.MutationBias * float32(cfg.Hill.BiasSensing)

	h.Genome = clampGenome(mean)
}

// MutateSpawn derives one newborn genome from the colony genome with
// bounded uniform noise per trait. The mutation bias widens the
// noise, never shifts its center.
func (h *AntHill) MutateSpawn() components.Genome {
	cfg := config.Cfg()
	noise := cfg.Genome.SpawnNoise
	scale := 1 + h.MutationBias

	g := h.Genome
	g.MaxSpeed += h.jitter(float32(noise.MaxSpeed) * scale)
	g.LifeExpectancy += h.jitter(float32(noise.LifeExpectancy) * scale)
	g.WanderStrength += h.jitter(float32(noise.WanderStrength) * scale)
	g.FoodSensing += h.jitter(float32(noise.FoodSensing) * scale)
	return clampGenome(g)
}

func (h *AntHill) jitter(halfWidth float32) float32 {
	return (h.rng.Float32()*2 - 1) * halfWidth
}

// clampGenome enforces the trait floors. Wander strength has no floor
// beyond zero.
func clampGenome(g components.Genome) components.Genome {
	floors := config.Cfg().Genome.Floors
	g.MaxSpeed = maxFloat(float32(floors.MaxSpeed), g.MaxSpeed)
	g.LifeExpectancy = maxFloat(float32(floors.LifeExpectancy), g.LifeExpectancy)
	g.FoodSensing = maxFloat(float32(floors.FoodSensing), g.FoodSensing)
	g.WanderStrength = maxFloat(0, g.WanderStrength)
	return g
}

// HillSnapshot is the serializable ledger state. Restoring a snapshot
// and evolving must match evolving the live ledger, so the genome
// queue is part of the snapshot.
type HillSnapshot struct {
	WorkerFood   uint32               `json:"worker_food"`
	QueenFood    uint32               `json:"queen_food"`
	Genome       components.Genome    `json:"genome"`
	WaveSize     float64              `json:"wave_size"`
	MutationBias float32              `json:"mutation_bias"`
	TotalSpawned uint32               `json:"total_spawned"`
	Queue        []components.Genome  `json:"queue"`
}

// Snapshot captures the ledger state.
func (h *AntHill) Snapshot() HillSnapshot {
	q := make([]components.Genome, len(h.queue))
	copy(q, h.queue)
	return HillSnapshot{
		WorkerFood:   h.WorkerFood,
		QueenFood:    h.QueenFood,
		Genome:       h.Genome,
		WaveSize:     h.WaveSize,
		MutationBias: h.MutationBias,
		TotalSpawned: h.TotalSpawned,
		Queue:        q,
	}
}

// Restore overwrites the ledger state from a snapshot. The evolution
// clock and pending spawns restart at zero.
func (h *AntHill) Restore(s HillSnapshot) {
	h.WorkerFood = s.WorkerFood
	h.QueenFood = s.QueenFood
	h.Genome = s.Genome
	h.WaveSize = s.WaveSize
	h.MutationBias = s.MutationBias
	h.TotalSpawned = s.TotalSpawned
	h.queue = append(h.queue[:0], s.Queue...)
	h.evolveElapsed = 0
	h.pendingSpawns = 0
}
