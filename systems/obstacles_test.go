package systems

import (
	"testing"
)

// ---------- Lot generation ----------

func TestIsObstacle_DefaultPassableBeforeGeneration(t *testing.T) {
	m := NewObstacleMap(1)
	for _, p := range [][2]float32{{0, 0}, {100, -50}, {-3.5, 7.2}} {
		if m.IsObstacle(p[0], p[1]) {
			t.Errorf("ungenerated terrain at (%f, %f) must be passable", p[0], p[1])
		}
	}
}

func TestEnsureLot_Idempotent(t *testing.T) {
	m := NewObstacleMap(2)
	m.EnsureLot(0.5, 0.5)
	if len(m.lots) != 1 {
		t.Fatalf("expected one lot, got %d", len(m.lots))
	}
	m.EnsureLot(0.6, 0.6)
	if len(m.lots) != 1 {
		t.Errorf("same lot generated twice")
	}
	m.EnsureLot(-0.5, 0.5)
	if len(m.lots) != 2 {
		t.Errorf("expected a second lot for negative X, got %d", len(m.lots))
	}
}

func TestIsObstacle_StableAcrossQueries(t *testing.T) {
	m := NewObstacleMap(3)
	m.EnsureLot(1.2, -0.7)
	a := m.IsObstacle(1.23, -0.78)
	b := m.IsObstacle(1.23, -0.78)
	if a != b {
		t.Error("obstacle queries must be deterministic")
	}
}

func TestIsObstacle_SameSeedSameTerrain(t *testing.T) {
	m1 := NewObstacleMap(4)
	m2 := NewObstacleMap(4)
	for x := float32(-2); x < 2; x += 0.1 {
		for z := float32(-2); z < 2; z += 0.1 {
			m1.EnsureLot(x, z)
			m2.EnsureLot(x, z)
			if m1.IsObstacle(x, z) != m2.IsObstacle(x, z) {
				t.Fatalf("terrain diverged at (%f, %f)", x, z)
			}
		}
	}
}

func TestHillFootprintStaysClear(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := NewObstacleMap(seed)
		// Stay a cell's width inside the clear radius so the cell
		// center rule cannot straddle the boundary.
		inner := hillClearRadius - 0.05
		for x := float32(-0.25); x <= 0.25; x += 0.05 {
			for z := float32(-0.25); z <= 0.25; z += 0.05 {
				m.EnsureLot(x, z)
				if float64(x*x+z*z) < inner*inner && m.IsObstacle(x, z) {
					t.Fatalf("seed %d: hill footprint blocked at (%f, %f)", seed, x, z)
				}
			}
		}
	}
}

// ---------- Coordinate mapping ----------

func TestCellToLot_NegativeCells(t *testing.T) {
	cases := []struct {
		c    int32
		want int32
	}{
		{0, 0},
		{19, 0},
		{20, 1},
		{-1, -1},
		{-20, -1},
		{-21, -2},
	}
	for _, tc := range cases {
		if got := cellToLot(tc.c); got != tc.want {
			t.Errorf("cellToLot(%d): expected %d, got %d", tc.c, tc.want, got)
		}
	}
}

func TestFloorInt(t *testing.T) {
	cases := []struct {
		v    float32
		want int32
	}{
		{0, 0},
		{0.9, 0},
		{1.0, 1},
		{-0.1, -1},
		{-1.0, -1},
		{-1.1, -2},
	}
	for _, tc := range cases {
		if got := floorInt(tc.v); got != tc.want {
			t.Errorf("floorInt(%f): expected %d, got %d", tc.v, tc.want, got)
		}
	}
}
