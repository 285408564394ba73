// Package main provides CMA-ES optimization for colony simulation parameters.
package main

import (
	"github.com/pthm-cable/anthill/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Founding genome
			{Name: "max_speed", Path: "genome.max_speed", Min: 0.15, Max: 0.40, Default: 0.25},
			{Name: "life_expectancy", Path: "genome.life_expectancy", Min: 10.0, Max: 60.0, Default: 30.0},
			{Name: "wander_strength", Path: "genome.wander_strength", Min: 0.02, Max: 0.50, Default: 0.10},
			{Name: "food_sensing", Path: "genome.food_sensing", Min: 3.0, Max: 10.0, Default: 5.0},
			// Forager behavior
			{Name: "target_weight", Path: "ant.target_weight", Min: 0.5, Max: 4.0, Default: 2.0},
			{Name: "heading_jitter", Path: "ant.heading_jitter", Min: 0.0, Max: 1.0, Default: 0.3},
			// Hill economics
			{Name: "queen_ratio", Path: "hill.queen_ratio", Min: 0.02, Max: 0.30, Default: 0.10},
			{Name: "spawn_wave", Path: "hill.spawn_wave", Min: 4.0, Max: 25.0, Default: 10.0},
			// Food economy pressure
			{Name: "spawn_interval", Path: "food.spawn_interval", Min: 8.0, Max: 40.0, Default: 19.0},
			{Name: "gone_bad_delay", Path: "food.gone_bad_delay", Min: 20.0, Max: 90.0, Default: 45.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds raw values to each spec's [Min, Max] range. CMA-ES can
// step outside the unit cube; the simulation only sees clamped values.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		clamped[i] = v
	}
	return clamped
}

// ApplyToConfig writes clamped raw values into a config and refreshes
// its derived block.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	clamped := pv.Clamp(raw)
	cfg.Genome.MaxSpeed = clamped[0]
	cfg.Genome.LifeExpectancy = clamped[1]
	cfg.Genome.WanderStrength = clamped[2]
	cfg.Genome.FoodSensing = clamped[3]
	cfg.Ant.TargetWeight = clamped[4]
	cfg.Ant.HeadingJitter = clamped[5]
	cfg.Hill.QueenRatio = clamped[6]
	cfg.Hill.SpawnWave = clamped[7]
	cfg.Food.SpawnInterval = clamped[8]
	cfg.Food.GoneBadDelay = clamped[9]
	cfg.RecomputeDerived()
}
