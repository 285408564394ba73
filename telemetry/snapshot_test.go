package telemetry

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/systems"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	hill := systems.NewAntHill(rand.New(rand.NewSource(1)))
	hill.QueenFood = 42
	hill.WorkerFood = 7
	hill.MutationBias = 0.3
	hill.Apply(systems.HillEvent{Kind: systems.EvStoreGenome, Genome: components.Genome{
		MaxSpeed: 0.22, LifeExpectancy: 35, WanderStrength: 0.12, FoodSensing: 5.5,
	}})

	snap := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 99,
		Tick:    1234,
		Hill:    hill.Snapshot(),
	}

	path, err := SaveSnapshot(dir, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("snapshot written outside dir: %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RNGSeed != 99 || loaded.Tick != 1234 {
		t.Errorf("metadata lost: %+v", loaded)
	}

	// A restored ledger must evolve exactly like the live one.
	restored := systems.NewAntHill(rand.New(rand.NewSource(2)))
	restored.Restore(loaded.Hill)

	hill.Evolve()
	restored.Evolve()

	if hill.Genome != restored.Genome {
		t.Errorf("evolution diverged: %+v vs %+v", hill.Genome, restored.Genome)
	}
	if hill.QueenFood != restored.QueenFood || hill.WorkerFood != restored.WorkerFood {
		t.Error("ledger stores diverged after round trip")
	}
}

func TestLoadSnapshot_RejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	hill := systems.NewAntHill(rand.New(rand.NewSource(1)))

	snap := &Snapshot{Version: SnapshotVersion + 1, Hill: hill.Snapshot()}
	path, err := SaveSnapshot(dir, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version mismatch error")
	}
}
