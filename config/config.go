// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	World     WorldConfig     `yaml:"world"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Steering  SteeringConfig  `yaml:"steering"`
	Ant       AntConfig       `yaml:"ant"`
	Genome    GenomeConfig    `yaml:"genome"`
	Food      FoodConfig      `yaml:"food"`
	AntEater  AntEaterConfig  `yaml:"anteater"`
	Hill      HillConfig      `yaml:"hill"`
	Session   SessionConfig   `yaml:"session"`
	Upgrades  UpgradesConfig  `yaml:"upgrades"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// WorldConfig holds world dimensions in world units.
// The playfield spans [-border, border] on both axes; the hill sits at the origin.
type WorldConfig struct {
	Border float64 `yaml:"border"`
	Def    float64 `yaml:"def"` // terrain cells per world unit
}

// TerrainConfig holds obstacle map noise parameters.
type TerrainConfig struct {
	Seed              int64   `yaml:"seed"` // 0 = derive from run seed
	Frequency         float64 `yaml:"frequency"`
	Octaves           int     `yaml:"octaves"`
	Lacunarity        float64 `yaml:"lacunarity"`
	Gain              float64 `yaml:"gain"`
	ObstacleThreshold float64 `yaml:"obstacle_threshold"` // noise above this is impassable
}

// SteeringConfig holds shared steering kernel parameters.
type SteeringConfig struct {
	Strength float64 `yaml:"strength"` // max steering force magnitude
}

// AntConfig holds forager behavior parameters.
type AntConfig struct {
	PickupRadius      float64 `yaml:"pickup_radius"`       // distance to grab a targeted pellet
	DeliverRadius     float64 `yaml:"deliver_radius"`      // distance to the hill to drop food
	TargetWeight      float64 `yaml:"target_weight"`       // pull toward remembered pellet position
	HeadingJitter     float64 `yaml:"heading_jitter"`      // random jitter on seek/return headings
	BlockedWanderStep float64 `yaml:"blocked_wander_step"` // wander escalation per blocked tick
	ProbeLookahead    float64 `yaml:"probe_lookahead"`     // obstacle probe distance in cells
}

// GenomeConfig holds the founding colony genome, floors and spawn mutation noise.
type GenomeConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	LifeExpectancy float64 `yaml:"life_expectancy"`
	WanderStrength float64 `yaml:"wander_strength"`
	FoodSensing    float64 `yaml:"food_sensing"`

	Floors     GenomeFloors `yaml:"floors"`
	SpawnNoise SpawnNoise   `yaml:"spawn_noise"`
}

// GenomeFloors are the minimum trait values the colony genome is clamped to.
type GenomeFloors struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	LifeExpectancy float64 `yaml:"life_expectancy"`
	FoodSensing    float64 `yaml:"food_sensing"`
}

// SpawnNoise holds the bounded uniform noise half-widths applied per trait at spawn.
type SpawnNoise struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	LifeExpectancy float64 `yaml:"life_expectancy"`
	WanderStrength float64 `yaml:"wander_strength"`
	FoodSensing    float64 `yaml:"food_sensing"`
}

// FoodConfig holds food economy parameters.
type FoodConfig struct {
	SpawnInterval      float64 `yaml:"spawn_interval"`       // seconds between spawn waves
	SpawnIntervalFloor float64 `yaml:"spawn_interval_floor"` // interval never shrinks below this
	SpawnIntervalStep  float64 `yaml:"spawn_interval_step"`  // shrink per acceleration tick
	HeapMin            int     `yaml:"heap_min"`             // pellets per heap: [min, max)
	HeapMax            int     `yaml:"heap_max"`
	PelletSpread       float64 `yaml:"pellet_spread"` // pellet offset radius from heap center
	GoneBadDelay       float64 `yaml:"gone_bad_delay"`
	GoneBadJitter      float64 `yaml:"gone_bad_jitter"`
	GoneBadFloor       float64 `yaml:"gone_bad_floor"`
	GoneBadStep        float64 `yaml:"gone_bad_step"`
	SummonDelay        float64 `yaml:"summon_delay"`
	SummonFloor        float64 `yaml:"summon_floor"`
	SummonStep         float64 `yaml:"summon_step"`
	AccelInterval      float64 `yaml:"accel_interval"` // seconds between difficulty accelerations
	NearRange          float64 `yaml:"near_range"`     // placement range for "nearby" spawns
	MidChance          float64 `yaml:"mid_chance"`     // chance of a mid-range spawn instead of far
}

// AntEaterConfig holds predator parameters.
type AntEaterConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`
	BaseWander        float64 `yaml:"base_wander"`
	SpawnWander       float64 `yaml:"spawn_wander"`
	BlockedWanderStep float64 `yaml:"blocked_wander_step"` // wander escalation per blocked tick
	ConsumeRadiusSq   float64 `yaml:"consume_radius_sq"`
	DeathRadiusSq     float64 `yaml:"death_radius_sq"`
	KillFoodDiv       uint32  `yaml:"kill_food_divisor"`  // ants_killed / this = food units refunded
	EatenFoodDiv      uint32  `yaml:"eaten_food_divisor"` // food_eaten / this = food units refunded
	KillQueenRatio    float64 `yaml:"kill_queen_ratio"`   // queen routing for kill refunds
	EatenQueenRatio   float64 `yaml:"eaten_queen_ratio"`  // queen routing for eaten refunds
	LifePenalty       float64 `yaml:"life_penalty"`       // colony life expectancy lost per death
	SpeedPenalty      float64 `yaml:"speed_penalty"`      // colony max speed lost per death
}

// HillConfig holds colony ledger parameters.
type HillConfig struct {
	StartFood      uint32  `yaml:"start_food"`      // worker food at session start
	SpawnThreshold uint32  `yaml:"spawn_threshold"` // worker food per financed wave
	SpawnWave      float64 `yaml:"spawn_wave"`      // ants per financed wave
	MutationBias   float64 `yaml:"mutation_bias"`
	BiasSpeed      float64 `yaml:"bias_speed"`   // evolution drift per unit bias
	BiasLife       float64 `yaml:"bias_life"`
	BiasSensing    float64 `yaml:"bias_sensing"`
	QueenRatio     float64 `yaml:"queen_ratio"` // chance a delivered unit goes to the queen
	GenomeQueue    int     `yaml:"genome_queue"`
	EvolveInterval float64 `yaml:"evolve_interval"`
}

// SessionConfig holds win/lose and escalation parameters.
type SessionConfig struct {
	SampleInterval  float64 `yaml:"sample_interval"`
	WinQueenFood    uint32  `yaml:"win_queen_food"`
	WinPopulation   uint32  `yaml:"win_population"`
	ApocalypseAfter float64 `yaml:"apocalypse_after"` // seconds of play
	ApocalypsePop   uint32  `yaml:"apocalypse_population"`
	ApocalypseTotal uint32  `yaml:"apocalypse_total"`
	SummonChance    float64 `yaml:"summon_chance"` // per-sample chance the food summon unlocks
	HistorySize     int     `yaml:"history_size"`
}

// UpgradeConfig holds one purchasable upgrade: its queen food cost, its effect
// magnitude, and how both escalate per purchase.
type UpgradeConfig struct {
	Cost       uint32  `yaml:"cost"`
	CostStep   uint32  `yaml:"cost_step"`
	Amount     float64 `yaml:"amount"`
	AmountStep float64 `yaml:"amount_step"`
}

// UpgradesConfig holds the upgrade cost table.
type UpgradesConfig struct {
	Spawn    UpgradeConfig `yaml:"spawn"`
	Wave     UpgradeConfig `yaml:"wave"`
	Speed    UpgradeConfig `yaml:"speed"`
	Life     UpgradeConfig `yaml:"life"`
	Sensing  UpgradeConfig `yaml:"sensing"`
	Mutation UpgradeConfig `yaml:"mutation"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32            float32 // Physics.DT as float32
	Border32        float32
	Def32           float32
	SteerStrength32 float32
	PickupRadiusSq  float32 // Ant.PickupRadius squared
	DeliverRadiusSq float32 // Ant.DeliverRadius squared
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// RecomputeDerived refreshes the derived block after direct field
// mutation, as the parameter optimizer does between evaluations.
func (c *Config) RecomputeDerived() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Border32 = float32(c.World.Border)
	c.Derived.Def32 = float32(c.World.Def)
	c.Derived.SteerStrength32 = float32(c.Steering.Strength)
	c.Derived.PickupRadiusSq = float32(c.Ant.PickupRadius * c.Ant.PickupRadius)
	c.Derived.DeliverRadiusSq = float32(c.Ant.DeliverRadius * c.Ant.DeliverRadius)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
