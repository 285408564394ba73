package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

func newTestHill(seed int64) *AntHill {
	return NewAntHill(rand.New(rand.NewSource(seed)))
}

// ---------- Financing ----------

func TestFinance_SingleDeductionPerTick(t *testing.T) {
	h := newTestHill(1)
	h.WorkerFood = 25

	h.Finance()
	if h.WorkerFood != 15 {
		t.Errorf("expected 15 worker food after one tick, got %d", h.WorkerFood)
	}
	if got := h.TakePendingSpawns(); got != int(h.WaveSize) {
		t.Errorf("expected one wave of %d, got %d", int(h.WaveSize), got)
	}

	h.Finance()
	if h.WorkerFood != 5 {
		t.Errorf("expected 5 worker food after second tick, got %d", h.WorkerFood)
	}

	h.Finance()
	if h.WorkerFood != 5 {
		t.Errorf("below threshold must not deduct, got %d", h.WorkerFood)
	}
	if got := h.TakePendingSpawns(); got != int(h.WaveSize) {
		t.Errorf("expected one more wave pending, got %d", got)
	}
}

func TestTakePendingSpawns_Clears(t *testing.T) {
	h := newTestHill(1)
	h.Apply(HillEvent{Kind: EvSpawnAnts, Count: 7})
	if got := h.TakePendingSpawns(); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := h.TakePendingSpawns(); got != 0 {
		t.Errorf("expected drained counter, got %d", got)
	}
}

// ---------- Delivery routing ----------

func TestDeliver_SplitsBetweenStores(t *testing.T) {
	h := newTestHill(42)
	baseline := h.QueenFood + h.WorkerFood
	const n = 10000
	for i := 0; i < n; i++ {
		h.Deliver()
	}
	if h.QueenFood+h.WorkerFood != n+baseline {
		t.Fatalf("stores must sum to %d, got %d", n+baseline, h.QueenFood+h.WorkerFood)
	}
	ratio := float64(h.QueenFood) / n
	want := config.Cfg().Hill.QueenRatio
	if math.Abs(ratio-want) > 0.02 {
		t.Errorf("queen share %f too far from %f", ratio, want)
	}
}

// ---------- Bootstrap ----------

func TestReset_SeedsStartingWorkerFood(t *testing.T) {
	h := newTestHill(1)
	start := config.Cfg().Hill.StartFood
	if h.WorkerFood != start {
		t.Fatalf("expected starting worker food %d, got %d", start, h.WorkerFood)
	}
	if h.QueenFood != 0 {
		t.Errorf("expected an empty queen store, got %d", h.QueenFood)
	}
	// The founding wave comes out of that balance through Finance.
	h.Finance()
	if got := h.TakePendingSpawns(); got != int(h.WaveSize) {
		t.Errorf("expected a founding wave of %d, got %d", int(h.WaveSize), got)
	}
}

// ---------- Ledger events ----------

func TestApply_RemoveFoodClampsAtZero(t *testing.T) {
	h := newTestHill(1)
	h.QueenFood = 3
	h.Apply(HillEvent{Kind: EvRemoveFood, Amount: 10})
	if h.QueenFood != 0 {
		t.Errorf("expected clamp to zero, got %d", h.QueenFood)
	}
}

func TestApply_ReplenishRoutesByRatio(t *testing.T) {
	h := newTestHill(1)
	h.QueenFood = 0
	h.WorkerFood = 0

	h.Apply(HillEvent{Kind: EvReplenishFood, Count: 50, Ratio: 1})
	if h.QueenFood != 50 || h.WorkerFood != 0 {
		t.Errorf("ratio 1 must feed the queen only, got queen=%d worker=%d", h.QueenFood, h.WorkerFood)
	}

	h.Apply(HillEvent{Kind: EvReplenishFood, Count: 50, Ratio: 0})
	if h.WorkerFood != 50 {
		t.Errorf("ratio 0 must feed the stores only, got worker=%d", h.WorkerFood)
	}
}

func TestApply_ReplenishStoresAttachedGenome(t *testing.T) {
	h := newTestHill(1)
	g := components.Genome{MaxSpeed: 0.42}
	h.Apply(HillEvent{Kind: EvReplenishFood, Count: 1, Ratio: 0.5, Genome: g, HasGenome: true})
	if h.QueueLen() != 1 {
		t.Fatalf("expected the attached genome queued, got %d", h.QueueLen())
	}
	if h.queue[0].MaxSpeed != g.MaxSpeed {
		t.Errorf("queued genome must be the attached one, got %f", h.queue[0].MaxSpeed)
	}

	h.Apply(HillEvent{Kind: EvReplenishFood, Count: 1, Ratio: 0.5})
	if h.QueueLen() != 1 {
		t.Error("a genome-less replenish must not queue anything")
	}
}

func TestApply_ImprovementsRespectFloors(t *testing.T) {
	h := newTestHill(1)
	floors := config.Cfg().Genome.Floors

	h.Apply(HillEvent{Kind: EvImproveMaxSpeed, Amount: -100})
	if h.Genome.MaxSpeed != float32(floors.MaxSpeed) {
		t.Errorf("expected speed floor %f, got %f", floors.MaxSpeed, h.Genome.MaxSpeed)
	}
	h.Apply(HillEvent{Kind: EvImproveLifeExpectancy, Amount: -100})
	if h.Genome.LifeExpectancy != float32(floors.LifeExpectancy) {
		t.Errorf("expected life floor %f, got %f", floors.LifeExpectancy, h.Genome.LifeExpectancy)
	}
	h.Apply(HillEvent{Kind: EvImproveFoodSensing, Amount: -100})
	if h.Genome.FoodSensing != float32(floors.FoodSensing) {
		t.Errorf("expected sensing floor %f, got %f", floors.FoodSensing, h.Genome.FoodSensing)
	}
}

func TestApply_WaveMultiplier(t *testing.T) {
	h := newTestHill(1)
	before := h.WaveSize
	h.Apply(HillEvent{Kind: EvImproveSpawnCount, Amount: 1.75})
	if math.Abs(h.WaveSize-before*1.75) > 1e-9 {
		t.Errorf("expected wave %f, got %f", before*1.75, h.WaveSize)
	}
}

// ---------- Genome queue ----------

func TestStoreGenome_EvictsOldestAtCapacity(t *testing.T) {
	h := newTestHill(1)
	capN := config.Cfg().Hill.GenomeQueue
	for i := 0; i < capN+5; i++ {
		h.Apply(HillEvent{Kind: EvStoreGenome, Genome: components.Genome{MaxSpeed: float32(i)}})
	}
	if h.QueueLen() != capN {
		t.Errorf("expected queue capped at %d, got %d", capN, h.QueueLen())
	}
	// Oldest five evicted: first survivor carries MaxSpeed 5.
	if h.queue[0].MaxSpeed != 5 {
		t.Errorf("expected oldest survivor 5, got %f", h.queue[0].MaxSpeed)
	}
}

// ---------- Evolution ----------

func TestEvolve_EmptyQueueIsStableWithoutBias(t *testing.T) {
	h := newTestHill(1)
	before := h.Genome
	h.Evolve()
	if h.Genome != before {
		t.Errorf("expected unchanged genome, got %+v vs %+v", h.Genome, before)
	}
}

func TestEvolve_MeansColonyAndQueue(t *testing.T) {
	h := newTestHill(1)
	h.Genome = components.Genome{MaxSpeed: 0.2, LifeExpectancy: 20, WanderStrength: 0.1, FoodSensing: 4}
	h.Apply(HillEvent{Kind: EvStoreGenome, Genome: components.Genome{MaxSpeed: 0.3, LifeExpectancy: 40, WanderStrength: 0.3, FoodSensing: 6}})

	h.Evolve()

	if math.Abs(float64(h.Genome.MaxSpeed)-0.25) > 1e-5 {
		t.Errorf("expected speed 0.25, got %f", h.Genome.MaxSpeed)
	}
	if math.Abs(float64(h.Genome.LifeExpectancy)-30) > 1e-4 {
		t.Errorf("expected life 30, got %f", h.Genome.LifeExpectancy)
	}
	if math.Abs(float64(h.Genome.WanderStrength)-0.2) > 1e-5 {
		t.Errorf("expected wander 0.2, got %f", h.Genome.WanderStrength)
	}
	if h.QueueLen() != 0 {
		t.Errorf("expected consumed queue, got %d", h.QueueLen())
	}
}

func TestEvolve_BiasDriftsTraits(t *testing.T) {
	h := newTestHill(1)
	h.MutationBias = 1.0
	before := h.Genome
	h.Evolve()

	hc := config.Cfg().Hill
	if math.Abs(float64(h.Genome.MaxSpeed-before.MaxSpeed)-hc.BiasSpeed) > 1e-6 {
		t.Errorf("expected speed drift %f, got %f", hc.BiasSpeed, h.Genome.MaxSpeed-before.MaxSpeed)
	}
	if math.Abs(float64(h.Genome.LifeExpectancy-before.LifeExpectancy)-hc.BiasLife) > 1e-4 {
		t.Errorf("expected life drift %f, got %f", hc.BiasLife, h.Genome.LifeExpectancy-before.LifeExpectancy)
	}
	if h.Genome.WanderStrength != before.WanderStrength {
		t.Errorf("bias must not drift wander, got %f", h.Genome.WanderStrength)
	}
}

func TestEvolve_ClampsToFloors(t *testing.T) {
	h := newTestHill(1)
	h.Genome = components.Genome{MaxSpeed: 0.01, LifeExpectancy: 1, WanderStrength: 0.1, FoodSensing: 0.5}
	h.Evolve()

	floors := config.Cfg().Genome.Floors
	if h.Genome.MaxSpeed < float32(floors.MaxSpeed) {
		t.Errorf("speed below floor: %f", h.Genome.MaxSpeed)
	}
	if h.Genome.LifeExpectancy < float32(floors.LifeExpectancy) {
		t.Errorf("life below floor: %f", h.Genome.LifeExpectancy)
	}
	if h.Genome.FoodSensing < float32(floors.FoodSensing) {
		t.Errorf("sensing below floor: %f", h.Genome.FoodSensing)
	}
}

// ---------- Spawn mutation ----------

func TestMutateSpawn_BoundedPerTrait(t *testing.T) {
	h := newTestHill(7)
	noise := config.Cfg().Genome.SpawnNoise
	for i := 0; i < 1000; i++ {
		g := h.MutateSpawn()
		if math.Abs(float64(g.MaxSpeed-h.Genome.MaxSpeed)) > noise.MaxSpeed+1e-6 {
			t.Fatalf("speed mutation out of bounds: %f", g.MaxSpeed-h.Genome.MaxSpeed)
		}
		if math.Abs(float64(g.LifeExpectancy-h.Genome.LifeExpectancy)) > noise.LifeExpectancy+1e-4 {
			t.Fatalf("life mutation out of bounds: %f", g.LifeExpectancy-h.Genome.LifeExpectancy)
		}
		if math.Abs(float64(g.FoodSensing-h.Genome.FoodSensing)) > noise.FoodSensing+1e-5 {
			t.Fatalf("sensing mutation out of bounds: %f", g.FoodSensing-h.Genome.FoodSensing)
		}
	}
}

func TestMutateSpawn_LeavesColonyGenomeAlone(t *testing.T) {
	h := newTestHill(7)
	before := h.Genome
	h.MutateSpawn()
	if h.Genome != before {
		t.Errorf("spawn mutation must not touch the colony genome")
	}
}

// ---------- Snapshot ----------

func TestSnapshot_RestoreThenEvolveMatchesLive(t *testing.T) {
	live := newTestHill(3)
	live.QueenFood = 12
	live.WorkerFood = 7
	live.MutationBias = 0.6
	live.Apply(HillEvent{Kind: EvStoreGenome, Genome: components.Genome{MaxSpeed: 0.3, LifeExpectancy: 50, WanderStrength: 0.2, FoodSensing: 8}})
	live.Apply(HillEvent{Kind: EvStoreGenome, Genome: components.Genome{MaxSpeed: 0.18, LifeExpectancy: 14, WanderStrength: 0.05, FoodSensing: 3}})

	restored := newTestHill(99)
	restored.Restore(live.Snapshot())

	live.Evolve()
	restored.Evolve()

	if live.Genome != restored.Genome {
		t.Errorf("evolution diverged after restore: %+v vs %+v", live.Genome, restored.Genome)
	}
	if live.QueenFood != restored.QueenFood || live.WorkerFood != restored.WorkerFood {
		t.Errorf("stores diverged after restore")
	}
}
