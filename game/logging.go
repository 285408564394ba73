package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/telemetry"
)

// recordTelemetry feeds the current tick's deltas to the collector
// and flushes a window when one elapses.
func (g *Game) recordTelemetry() {
	g.collector.RecordBirths(int(g.hill.TotalSpawned - g.prevSpawned))
	g.prevSpawned = g.hill.TotalSpawned

	for i := g.prevDelivered; i < g.hill.TotalDelivered; i++ {
		g.collector.RecordDelivery()
	}
	g.prevDelivered = g.hill.TotalDelivered

	for i := g.prevDeaths; i < g.ants.DeathsTotal; i++ {
		g.collector.RecordDeath()
	}
	g.prevDeaths = g.ants.DeathsTotal

	for i := g.prevKills; i < g.ants.KilledTotal; i++ {
		g.collector.RecordKill()
	}
	g.prevKills = g.ants.KilledTotal

	g.collector.RecordPelletsEaten(int(g.eaters.PelletsEatenTotal - g.prevEaten))
	g.prevEaten = g.eaters.PelletsEatenTotal

	for i := g.prevRotted; i < g.economy.RottedTotal; i++ {
		g.collector.RecordHeapRotted()
	}
	g.prevRotted = g.economy.RottedTotal

	for i := g.prevPredDead; i < g.eaters.DeathsTotal; i++ {
		g.collector.RecordPredatorDeath()
	}
	g.prevPredDead = g.eaters.DeathsTotal

	if g.collector.WindowElapsed(g.tick) {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the stats window, fills in end-of-window
// state, and writes it to the configured sinks.
func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.tick)

	stats.Population = g.ants.Population
	stats.Predators = g.eaters.Count
	stats.Heaps = len(g.economy.Heaps())
	stats.Pellets = g.economy.PelletCount()
	stats.QueenFood = g.hill.QueenFood
	stats.WorkerFood = g.hill.WorkerFood
	stats.GenomeSpeed = float64(g.hill.Genome.MaxSpeed)
	stats.GenomeLife = float64(g.hill.Genome.LifeExpectancy)
	stats.GenomeWander = float64(g.hill.Genome.WanderStrength)
	stats.GenomeSensing = float64(g.hill.Genome.FoodSensing)

	speeds, lives := g.sampleTraits()
	stats.SampleTraits(speeds, lives)

	if g.opts.LogStats {
		stats.Log()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if g.opts.SnapshotDir != "" {
		g.saveSnapshot()
	}
}

// sampleTraits reads the live population's genome traits.
func (g *Game) sampleTraits() (speeds, lives []float64) {
	speeds = make([]float64, 0, g.ants.Population)
	lives = make([]float64, 0, g.ants.Population)
	g.ants.Each(func(_ ecs.Entity, _ *components.Position, _ *components.Velocity, ant *components.Ant) {
		speeds = append(speeds, float64(ant.Genome.MaxSpeed))
		lives = append(lives, float64(ant.Genome.LifeExpectancy))
	})
	return speeds, lives
}

// saveSnapshot writes the hill ledger to the snapshot directory.
func (g *Game) saveSnapshot() {
	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		RNGSeed: g.opts.Seed,
		Tick:    g.tick,
		Hill:    g.hill.Snapshot(),
	}
	path, err := telemetry.SaveSnapshot(g.opts.SnapshotDir, snap)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Debug("snapshot saved", "path", path, "tick", g.tick)
}

// RestoreSnapshot loads a hill ledger snapshot into the running game.
func (g *Game) RestoreSnapshot(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	g.hill.Restore(snap.Hill)
	slog.Info("snapshot restored", "path", path, "tick", snap.Tick)
	return nil
}

// LogWorldState emits a one-line world summary. Used at session end.
func (g *Game) LogWorldState() {
	slog.Info("world state",
		"tick", g.tick,
		"state", g.session.State().String(),
		"population", g.ants.Population,
		"predators", g.eaters.Count,
		"heaps", len(g.economy.Heaps()),
		"pellets", g.economy.PelletCount(),
		"queen_food", g.hill.QueenFood,
		"worker_food", g.hill.WorkerFood,
		"total_spawned", g.hill.TotalSpawned,
		"apocalypse", g.session.ApocalypseActive(),
	)
}
