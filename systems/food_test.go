package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

func newTestEconomy(seed int64) *Economy {
	rng := rand.New(rand.NewSource(seed))
	return NewEconomy(rng, NewObstacleMap(seed))
}

// ---------- Heap spawning ----------

func TestSpawnHeap_PelletCountInRange(t *testing.T) {
	e := newTestEconomy(1)
	fc := config.Cfg().Food
	for i := 0; i < 50; i++ {
		h := e.SpawnHeap(1.0)
		// Upper bound is exclusive.
		if len(h.Pellets) < fc.HeapMin || len(h.Pellets) >= fc.HeapMax {
			t.Fatalf("pellet count %d outside [%d, %d)", len(h.Pellets), fc.HeapMin, fc.HeapMax)
		}
		if h.StartCount != len(h.Pellets) {
			t.Fatalf("start count %d != pellets %d", h.StartCount, len(h.Pellets))
		}
	}
}

func TestSpawnHeap_AvoidsObstacles(t *testing.T) {
	e := newTestEconomy(12)
	for i := 0; i < 20; i++ {
		h := e.SpawnHeap(2.0)
		if e.obstacles.IsObstacle(h.X, h.Z) {
			t.Fatalf("heap center (%f, %f) on an obstacle", h.X, h.Z)
		}
		for _, p := range h.Pellets {
			if e.obstacles.IsObstacle(p.X, p.Z) {
				t.Fatalf("pellet (%f, %f) on an obstacle", p.X, p.Z)
			}
		}
	}
}

func TestSpawnHeap_PelletsClusterAroundCenter(t *testing.T) {
	e := newTestEconomy(2)
	h := e.SpawnHeap(1.5)
	spread := config.Cfg().Food.PelletSpread
	for _, p := range h.Pellets {
		d := math.Sqrt(float64(distSq(p.X, p.Z, h.X, h.Z)))
		if d > spread+1e-5 {
			t.Fatalf("pellet %f from center, spread is %f", d, spread)
		}
	}
}

// ---------- Claims ----------

func TestClaimPellet_ExclusiveAndOrdered(t *testing.T) {
	e := newTestEconomy(3)
	h := e.SpawnHeap(0.5)
	at := components.Position{X: h.X, Z: h.Z}

	first := e.ClaimPellet(at, 10)
	second := e.ClaimPellet(at, 10)
	if first == nil || second == nil {
		t.Fatal("expected claims to succeed")
	}
	if first == second {
		t.Error("same pellet claimed twice")
	}
	if first != h.Pellets[0] || second != h.Pellets[1] {
		t.Error("claims must hand out pellets front to back")
	}
	if !first.Targeted || !second.Targeted {
		t.Error("claimed pellets must be marked targeted")
	}
}

func TestClaimPellet_OutOfSensingRange(t *testing.T) {
	e := newTestEconomy(4)
	e.SpawnHeap(1.8)
	if p := e.ClaimPellet(components.Position{}, 0.5); p != nil {
		t.Error("expected no claim outside sensing range")
	}
}

func TestClaimPellet_ServesRottedHeaps(t *testing.T) {
	e := newTestEconomy(5)
	h := e.SpawnHeap(0.5)
	e.rot(h)
	p := e.ClaimPellet(components.Position{X: h.X, Z: h.Z}, 10)
	if p == nil {
		t.Fatal("rotted pellets stay collectible until the heap despawns")
	}
	if !p.Targeted {
		t.Error("claimed pellet must be marked targeted")
	}
}

// ---------- Pellet removal ----------

func TestRemovePellet_PreservesOrder(t *testing.T) {
	e := newTestEconomy(6)
	h := e.SpawnHeap(0.5)
	second := h.Pellets[1]
	third := h.Pellets[2]

	e.RemovePellet(second)

	if h.Pellets[1] != third {
		t.Error("removal must preserve the order of remaining pellets")
	}
	for _, p := range h.Pellets {
		if p == second {
			t.Error("removed pellet still present")
		}
	}
}

func TestConsumeAt_MarksEaten(t *testing.T) {
	e := newTestEconomy(7)
	h := e.SpawnHeap(0.5)
	target := h.Pellets[0]
	before := len(h.Pellets)

	eaten := e.ConsumeAt(target.X, target.Z, 0.0001)
	if eaten == 0 {
		t.Fatal("expected at least one pellet eaten")
	}
	if !target.Eaten {
		t.Error("consumed pellet must carry the eaten flag for claim holders")
	}
	if len(h.Pellets) != before-eaten {
		t.Errorf("expected %d pellets left, got %d", before-eaten, len(h.Pellets))
	}
}

// ---------- Decay and summoning ----------

func TestUpdate_RottedHeapSummonsPredator(t *testing.T) {
	e := newTestEconomy(8)
	cfg := config.Cfg()
	savedJitter := cfg.Food.GoneBadJitter
	cfg.Food.GoneBadJitter = 0
	defer func() { cfg.Food.GoneBadJitter = savedJitter }()

	h := e.SpawnHeap(1.0)
	start := len(h.Pellets)

	var events []WorldEvent
	e.Update(e.goneBadDelay+0.1, &events)
	if !h.Bad {
		t.Fatal("expected heap gone bad")
	}
	if len(h.Pellets) != start {
		t.Errorf("rot must keep the pellets, had %d now %d", start, len(h.Pellets))
	}

	// Predator follows after the summon delay plus the size makeup,
	// at the heap's own position, even while pellets remain.
	wait := e.summonDelay + float64(cfg.Food.HeapMax-h.StartCount) + 0.1
	e.Update(wait, &events)

	found := false
	for _, ev := range events {
		if ev.Kind == EvSummonPredator {
			found = true
			if ev.X != h.X || ev.Z != h.Z {
				t.Errorf("summon at (%f, %f), heap at (%f, %f)", ev.X, ev.Z, h.X, h.Z)
			}
		}
	}
	if !found {
		t.Error("expected a predator summon after the rotted heap's delay")
	}
	kept := false
	for _, k := range e.Heaps() {
		if k == h {
			kept = true
		}
	}
	if !kept {
		t.Error("a rotted heap with pellets left must stay")
	}

	// Summons fire once; the heap leaves when its pellets are gone.
	events = events[:0]
	h.Pellets = h.Pellets[:0]
	e.Update(0.01, &events)
	for _, ev := range events {
		if ev.Kind == EvSummonPredator && ev.X == h.X && ev.Z == h.Z {
			t.Error("a heap must not summon twice")
		}
	}
	for _, k := range e.Heaps() {
		if k == h {
			t.Error("emptied heap must be removed")
		}
	}
}

func TestUpdate_HarvestedHeapRemovedWithoutSummon(t *testing.T) {
	e := newTestEconomy(9)
	h := e.SpawnHeap(1.0)
	h.Pellets = h.Pellets[:0]

	var events []WorldEvent
	e.Update(0.01, &events)

	for _, ev := range events {
		if ev.Kind == EvSummonPredator {
			t.Error("harvested heap must not summon")
		}
	}
	for _, kept := range e.Heaps() {
		if kept == h {
			t.Error("harvested heap must be removed")
		}
	}
}

// ---------- Acceleration ----------

func TestAccelerate_RespectsFloors(t *testing.T) {
	e := newTestEconomy(10)
	fc := config.Cfg().Food
	for i := 0; i < 100; i++ {
		e.accelerate()
	}
	if e.goneBadDelay != fc.GoneBadFloor {
		t.Errorf("expected gone-bad floor %f, got %f", fc.GoneBadFloor, e.goneBadDelay)
	}
	if e.summonDelay != fc.SummonFloor {
		t.Errorf("expected summon floor %f, got %f", fc.SummonFloor, e.summonDelay)
	}
	if e.spawnInterval != fc.SpawnIntervalFloor {
		t.Errorf("expected spawn floor %f, got %f", fc.SpawnIntervalFloor, e.spawnInterval)
	}
}

// ---------- Reset ----------

func TestReset_ClearsHeapsAndTimers(t *testing.T) {
	e := newTestEconomy(11)
	e.SpawnHeap(1.0)
	var events []WorldEvent
	e.Update(100, &events)

	e.Reset()
	if len(e.Heaps()) != 0 {
		t.Error("expected no heaps after reset")
	}
	if e.now != 0 {
		t.Error("expected clock reset")
	}
	fc := config.Cfg().Food
	if e.goneBadDelay != fc.GoneBadDelay || e.spawnInterval != fc.SpawnInterval {
		t.Error("expected timers back at configured values")
	}
}
