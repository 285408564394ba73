package telemetry

// Collector accumulates events within time windows and produces
// WindowStats records.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	births         int
	deaths         int
	kills          int
	deliveries     int
	pelletsEaten   int
	heapsRotted    int
	predatorDeaths int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirths records newly spawned foragers.
func (c *Collector) RecordBirths(n int) {
	c.births += n
}

// RecordDeath records one forager death from old age.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordKill records one forager eaten by a predator.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordDelivery records one pellet delivered to the hill.
func (c *Collector) RecordDelivery() {
	c.deliveries++
}

// RecordPelletsEaten records pellets consumed by predators.
func (c *Collector) RecordPelletsEaten(n int) {
	c.pelletsEaten += n
}

// RecordHeapRotted records one heap gone bad.
func (c *Collector) RecordHeapRotted() {
	c.heapsRotted++
}

// RecordPredatorDeath records one predator reaching the hill.
func (c *Collector) RecordPredatorDeath() {
	c.predatorDeaths++
}

// WindowElapsed reports whether the current window ends at tick.
func (c *Collector) WindowElapsed(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush closes the current window, returning a partially filled
// record. The caller fills in the end-of-window state fields.
func (c *Collector) Flush(tick int32) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * float64(c.dt),
		Births:          c.births,
		Deaths:          c.deaths,
		Kills:           c.kills,
		Deliveries:      c.deliveries,
		PelletsEaten:    c.pelletsEaten,
		HeapsRotted:     c.heapsRotted,
		PredatorDeads:   c.predatorDeaths,
	}

	c.windowStartTick = tick
	c.births = 0
	c.deaths = 0
	c.kills = 0
	c.deliveries = 0
	c.pelletsEaten = 0
	c.heapsRotted = 0
	c.predatorDeaths = 0

	return stats
}
