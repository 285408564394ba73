package systems

import (
	"math/rand"

	"github.com/pthm-cable/anthill/config"
)

// SessionState is the top-level game state.
type SessionState uint8

const (
	// Splash waits for the player to start a session.
	Splash SessionState = iota
	// Playing runs the simulation.
	Playing
	// Won ends a session in victory.
	Won
	// Lost ends a session in defeat.
	Lost
)

func (s SessionState) String() string {
	switch s {
	case Splash:
		return "splash"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// SessionStats is the per-tick world summary the controller judges.
type SessionStats struct {
	Population   int
	QueenFood    uint32
	Pellets      int
	Predators    int
	TotalSpawned uint32
}

// Session owns win and lose judgement, the population history ring,
// the late-game apocalypse escalation, and the per-sample lottery that
// unlocks the create-food action. All of it runs on the one-second
// sample clock; between samples the controller only accumulates time.
type Session struct {
	rng *rand.Rand

	state   SessionState
	elapsed float64

	sampleElapsed float64
	history       []uint32
	histHead      int
	histLen       int

	maxPop     uint32
	apocalypse bool
	corner     int
	foodSummon bool
}

// NewSession builds a controller on the splash screen.
func NewSession(rng *rand.Rand) *Session {
	s := &Session{rng: rng}
	s.Reset()
	return s
}

// Reset returns the controller to the splash screen.
func (s *Session) Reset() {
	s.state = Splash
	s.elapsed = 0
	s.sampleElapsed = 0
	s.history = make([]uint32, config.Cfg().Session.HistorySize)
	s.histHead = 0
	s.histLen = 0
	s.maxPop = 0
	s.apocalypse = false
	s.corner = 0
	s.foodSummon = false
}

// Start leaves the splash screen. A no-op in any other state.
func (s *Session) Start() {
	if s.state == Splash {
		s.state = Playing
	}
}

// State returns the current top-level state.
func (s *Session) State() SessionState {
	return s.state
}

// Elapsed returns play time in seconds.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// MaxPopulation returns the session's population high-water mark.
func (s *Session) MaxPopulation() uint32 {
	return s.maxPop
}

// FoodSummonReady reports whether the create-food action is armed.
func (s *Session) FoodSummonReady() bool {
	return s.foodSummon
}

// TakeFoodSummon consumes the armed create-food action. It reports
// false when the action is not armed.
func (s *Session) TakeFoodSummon() bool {
	if !s.foodSummon {
		return false
	}
	s.foodSummon = false
	return true
}

// ApocalypseActive reports whether the late-game escalation fired.
func (s *Session) ApocalypseActive() bool {
	return s.apocalypse
}

// Update judges the session and appends escalation events to out.
// Only a playing session advances, and judgement happens on the
// sample clock, never between samples.
func (s *Session) Update(dt float64, stats SessionStats, out *[]WorldEvent) {
	if s.state != Playing {
		return
	}
	sc := config.Cfg().Session
	s.elapsed += dt

	s.sampleElapsed += dt
	if s.sampleElapsed < sc.SampleInterval {
		return
	}
	s.sampleElapsed = 0

	// A colony that grew and then died out has lost. The guard keeps
	// the opening seconds, before the first ant spawns, alive.
	if s.maxPop > 0 && stats.Population == 0 {
		s.state = Lost
		return
	}
	if stats.QueenFood >= sc.WinQueenFood ||
		(uint32(stats.Population) > sc.WinPopulation && stats.Pellets == 0 && stats.Predators == 0) {
		s.state = Won
		return
	}

	if uint32(stats.Population) > s.maxPop {
		s.maxPop = uint32(stats.Population)
	}
	s.record(uint32(stats.Population))

	if !s.foodSummon && s.rng.Float64() < sc.SummonChance {
		s.foodSummon = true
	}

	if !s.apocalypse &&
		(s.elapsed >= sc.ApocalypseAfter ||
			uint32(stats.Population) > sc.ApocalypsePop ||
			stats.TotalSpawned > sc.ApocalypseTotal) {
		s.apocalypse = true
	}
	if s.apocalypse {
		x, z := apocalypseCorner(s.corner)
		s.corner = (s.corner + 1) % 16
		*out = append(*out, WorldEvent{Kind: EvSummonPredator, X: x, Z: z})
	}
}

// apocalypseCorner returns the i-th point of the sixteen-stop border
// circuit the apocalypse walks, one predator per sample.
func apocalypseCorner(i int) (float32, float32) {
	b := config.Cfg().Derived.Border32
	h := b / 2
	points := [16][2]float32{
		{b, b}, {b, h}, {b, 0}, {b, -h},
		{b, -b}, {h, -b}, {0, -b}, {-h, -b},
		{-b, -b}, {-b, -h}, {-b, 0}, {-b, h},
		{-b, b}, {-h, b}, {0, b}, {h, b},
	}
	p := points[i%16]
	return p[0], p[1]
}

// record pushes one population sample into the ring.
func (s *Session) record(pop uint32) {
	s.history[s.histHead] = pop
	s.histHead = (s.histHead + 1) % len(s.history)
	if s.histLen < len(s.history) {
		s.histLen++
	}
}

// History returns the population samples oldest first.
func (s *Session) History() []uint32 {
	out := make([]uint32, 0, s.histLen)
	start := (s.histHead - s.histLen + len(s.history)) % len(s.history)
	for i := 0; i < s.histLen; i++ {
		out = append(out, s.history[(start+i)%len(s.history)])
	}
	return out
}
