package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/anthill/config"
	"github.com/pthm-cable/anthill/systems"
	"github.com/pthm-cable/anthill/telemetry"
	"github.com/pthm-cable/anthill/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	AutoStart      bool
}

// Game owns the world and runs the fixed-step simulation. One tick
// advances the systems in a fixed order: world events queued by the
// previous tick land first, then food, foragers, predators, the
// ledger, and finally the session judgement. Each system queues its
// cross-cutting effects instead of reaching into its peers.
type Game struct {
	opts Options

	world     *ecs.World
	rng       *rand.Rand
	obstacles *systems.ObstacleMap

	economy *systems.Economy
	hill    *systems.AntHill
	ants    *systems.AntSystem
	eaters  *systems.AntEaterSystem
	session *systems.Session

	hillEvents  []systems.HillEvent
	worldEvents []systems.WorldEvent

	upgrades *upgradeLedger

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	// Previous totals for per-tick telemetry deltas.
	prevSpawned   uint32
	prevDelivered uint32
	prevDeaths    uint32
	prevKills     uint32
	prevEaten     uint32
	prevRotted    uint32
	prevPredDead  uint32

	hud   *ui.HUD
	panel *ui.Panel

	tick             int32
	speed            int
	paused           bool
	apocalypseLogged bool
}

// NewGameWithOptions creates a game.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	terrainSeed := cfg.Terrain.Seed
	if terrainSeed == 0 {
		terrainSeed = opts.Seed
	}
	obstacles := systems.NewObstacleMap(terrainSeed)

	// Pre-generate the playfield so the rim is walkable and drawable
	// from the first frame.
	border := cfg.Derived.Border32
	for x := -border - 1; x <= border+1; x++ {
		for z := -border - 1; z <= border+1; z++ {
			obstacles.EnsureLot(x, z)
		}
	}

	hill := systems.NewAntHill(rng)
	economy := systems.NewEconomy(rng, obstacles)
	ants := systems.NewAntSystem(world, rng, hill, economy, obstacles)
	eaters := systems.NewAntEaterSystem(world, rng, ants, economy, obstacles)
	session := systems.NewSession(rng)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("telemetry output disabled", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := &Game{
		opts:      opts,
		world:     world,
		rng:       rng,
		obstacles: obstacles,
		economy:   economy,
		hill:      hill,
		ants:      ants,
		eaters:    eaters,
		session:   session,
		upgrades:  newUpgradeLedger(),
		collector: telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		output:    output,
		hud:       ui.NewHUD(),
		panel:     ui.NewPanel(int32(cfg.Screen.Width)-270, 100, 260),
		speed:     1,
	}

	if opts.AutoStart || opts.Headless {
		g.startSession()
	}
	return g
}

// startSession begins play with one nearby heap. The founding ants
// come from the starting worker-food balance through Finance.
func (g *Game) startSession() {
	g.session.Start()
	g.economy.SpawnNearby()
	slog.Info("session started", "seed", g.opts.Seed)
}

// CreateFood spends the armed create-food action: one nearby heap,
// and a predator from each world corner.
func (g *Game) CreateFood() {
	if !g.session.TakeFoodSummon() {
		return
	}
	g.economy.SpawnNearby()
	b := config.Cfg().Derived.Border32
	g.eaters.Summon(b, b)
	g.eaters.Summon(b, -b)
	g.eaters.Summon(-b, b)
	g.eaters.Summon(-b, -b)
	slog.Info("food summoned", "tick", g.tick)
}

// Restart tears the world down to a fresh session.
func (g *Game) Restart() {
	g.ants.Clear()
	g.eaters.Clear()
	g.ants.Reset()
	g.eaters.Reset()
	g.economy.Reset()
	g.hill.Reset()
	g.session.Reset()
	g.upgrades = newUpgradeLedger()
	g.hillEvents = g.hillEvents[:0]
	g.worldEvents = g.worldEvents[:0]
	g.resetDeltas()
	g.tick = 0
	g.apocalypseLogged = false
	g.startSession()
}

func (g *Game) resetDeltas() {
	g.prevSpawned = 0
	g.prevDelivered = 0
	g.prevDeaths = 0
	g.prevKills = 0
	g.prevEaten = 0
	g.prevRotted = 0
	g.prevPredDead = 0
}

// Update runs input handling and one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused || g.session.State() != systems.Playing {
		return
	}
	for i := 0; i < g.speed; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.opts.StepsPerUpdate; i++ {
		if g.session.State() != systems.Playing {
			return
		}
		g.simulationStep()
	}
}

// simulationStep runs a single tick.
func (g *Game) simulationStep() {
	dt := config.Cfg().Physics.DT

	// 1. World effects queued by the previous tick.
	g.drainWorldEvents()

	// 2. Food heaps spawn, rot and summon.
	g.economy.Update(dt, &g.worldEvents)

	// 3. Foragers.
	g.ants.Update(dt, &g.hillEvents)

	// 4. Predators.
	g.eaters.Update(dt, &g.hillEvents)

	// 5. Ledger: queued events, financing, evolution.
	for _, ev := range g.hillEvents {
		g.hill.Apply(ev)
	}
	g.hillEvents = g.hillEvents[:0]
	g.hill.Finance()
	g.hill.TickEvolution(dt)

	// 6. Session judgement.
	g.session.Update(dt, g.sessionStats(), &g.worldEvents)
	if g.session.ApocalypseActive() && !g.apocalypseLogged {
		g.apocalypseLogged = true
		slog.Warn("apocalypse", "tick", g.tick)
	}

	g.recordTelemetry()
	g.tick++
}

// drainWorldEvents applies the effects queued during the previous
// tick.
func (g *Game) drainWorldEvents() {
	for _, ev := range g.worldEvents {
		switch ev.Kind {
		case systems.EvSummonPredator:
			g.eaters.Summon(ev.X, ev.Z)
		}
	}
	g.worldEvents = g.worldEvents[:0]
}

func (g *Game) sessionStats() systems.SessionStats {
	return systems.SessionStats{
		Population:   g.ants.Population,
		QueenFood:    g.hill.QueenFood,
		Pellets:      g.economy.PelletCount(),
		Predators:    g.eaters.Count,
		TotalSpawned: g.hill.TotalSpawned,
	}
}

// SessionState exposes the controller state for rendering and tests.
func (g *Game) SessionState() systems.SessionState {
	return g.session.State()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Population returns the live forager count.
func (g *Game) Population() int {
	return g.ants.Population
}

// QueenFood returns the queen's food store.
func (g *Game) QueenFood() uint32 {
	return g.hill.QueenFood
}

// Unload releases resources held outside the Go heap.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
