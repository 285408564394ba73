package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`
	Predators  int `csv:"predators"`
	Heaps      int `csv:"heaps"`
	Pellets    int `csv:"pellets"`

	// Ledger at window end
	QueenFood  uint32 `csv:"queen_food"`
	WorkerFood uint32 `csv:"worker_food"`

	// Events during window
	Births        int `csv:"births"`
	Deaths        int `csv:"deaths"`
	Kills         int `csv:"kills"`
	Deliveries    int `csv:"deliveries"`
	PelletsEaten  int `csv:"pellets_eaten"`
	HeapsRotted   int `csv:"heaps_rotted"`
	PredatorDeads int `csv:"predator_deaths"`

	// Colony genome at window end
	GenomeSpeed   float64 `csv:"genome_speed"`
	GenomeLife    float64 `csv:"genome_life"`
	GenomeWander  float64 `csv:"genome_wander"`
	GenomeSensing float64 `csv:"genome_sensing"`

	// Live population trait spread, sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	LifeMean  float64 `csv:"life_mean"`
	LifeStd   float64 `csv:"life_std"`
}

// SampleTraits fills the trait spread fields from the live
// population's genome samples.
func (w *WindowStats) SampleTraits(speeds, lives []float64) {
	if len(speeds) > 0 {
		w.SpeedMean = stat.Mean(speeds, nil)
		w.SpeedStd = stat.StdDev(speeds, nil)
	}
	if len(lives) > 0 {
		w.LifeMean = stat.Mean(lives, nil)
		w.LifeStd = stat.StdDev(lives, nil)
	}
}

// Log emits the window to the default structured logger.
func (w WindowStats) Log() {
	slog.Info("window stats",
		"tick", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"population", w.Population,
		"predators", w.Predators,
		"pellets", w.Pellets,
		"queen_food", w.QueenFood,
		"worker_food", w.WorkerFood,
		"births", w.Births,
		"deaths", w.Deaths,
		"kills", w.Kills,
		"deliveries", w.Deliveries,
		"genome_speed", w.GenomeSpeed,
		"genome_life", w.GenomeLife,
	)
}
