package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/anthill/config"
)

// lotCells is the edge length of one lot in terrain cells. With the
// default cell density of 20 cells per world unit, one lot covers one
// square world unit.
const lotCells = 20

// hillClearRadius is the obstacle-free radius around the hill in
// world units, so deliveries can always land.
const hillClearRadius = 0.3

type lotKey struct {
	X, Z int32
}

type lot struct {
	blocked [lotCells * lotCells]bool
}

// ObstacleMap answers point-in-obstacle queries over an unbounded
// plane. World coordinates map to terrain cells at the configured
// density; terrain is generated lazily one lot at a time from fractal
// simplex noise, and cells above the threshold are blocked. Queries
// outside any generated lot default to passable.
type ObstacleMap struct {
	noise opensimplex.Noise
	lots  map[lotKey]*lot
}

// NewObstacleMap builds an empty map seeded for reproducible terrain.
func NewObstacleMap(seed int64) *ObstacleMap {
	return &ObstacleMap{
		noise: opensimplex.NewNormalized(seed),
		lots:  make(map[lotKey]*lot),
	}
}

// IsObstacle reports whether the world point (x, z) lies inside a
// blocked cell. Only lots generated via EnsureLot are consulted, so
// untouched terrain is always passable.
func (m *ObstacleMap) IsObstacle(x, z float32) bool {
	def := config.Cfg().Derived.Def32
	gx := floorInt(x * def)
	gz := floorInt(z * def)
	kx := cellToLot(gx)
	kz := cellToLot(gz)
	lt, ok := m.lots[lotKey{X: kx, Z: kz}]
	if !ok {
		return false
	}
	cx := int(gx) - int(kx)*lotCells
	cz := int(gz) - int(kz)*lotCells
	return lt.blocked[cz*lotCells+cx]
}

// EnsureLot generates the lot containing the world point (x, z) if it
// does not exist yet. Safe to call every tick with agent positions.
func (m *ObstacleMap) EnsureLot(x, z float32) {
	def := config.Cfg().Derived.Def32
	kx := cellToLot(floorInt(x * def))
	kz := cellToLot(floorInt(z * def))
	key := lotKey{X: kx, Z: kz}
	if _, ok := m.lots[key]; ok {
		return
	}
	m.lots[key] = m.generate(kx, kz)
}

func (m *ObstacleMap) generate(kx, kz int32) *lot {
	cfg := config.Cfg()
	tc := cfg.Terrain
	def := cfg.World.Def

	lt := &lot{}
	for cz := 0; cz < lotCells; cz++ {
		for cx := 0; cx < lotCells; cx++ {
			gx := float64(int(kx)*lotCells + cx)
			gz := float64(int(kz)*lotCells + cz)
			// Cell center in world units.
			wx := (gx + 0.5) / def
			wz := (gz + 0.5) / def
			if wx*wx+wz*wz < hillClearRadius*hillClearRadius {
				continue
			}
			lt.blocked[cz*lotCells+cx] = m.fractal(gx, gz) > tc.ObstacleThreshold
		}
	}
	return lt
}

func (m *ObstacleMap) fractal(x, z float64) float64 {
	tc := config.Cfg().Terrain
	freq := tc.Frequency
	amp := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < tc.Octaves; i++ {
		sum += m.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		freq *= tc.Lacunarity
		amp *= tc.Gain
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// floorInt truncates toward negative infinity.
func floorInt(v float32) int32 {
	i := int32(v)
	if v < 0 && v != float32(i) {
		i--
	}
	return i
}

// cellToLot maps a cell index to its lot index, flooring toward
// negative infinity so lots tile the negative quadrants correctly.
func cellToLot(c int32) int32 {
	if c < 0 {
		return (c - lotCells + 1) / lotCells
	}
	return c / lotCells
}
