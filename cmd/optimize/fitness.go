package main

import (
	"github.com/pthm-cable/anthill/config"
	"github.com/pthm-cable/anthill/game"
	"github.com/pthm-cable/anthill/systems"
)

// FitnessEvaluator runs headless sessions and computes fitness.
// Evaluations are sequential because parameters live in the shared
// global config; seeds within one evaluation run back to back against
// the same parameters.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int32
	seeds    []int64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
	}
}

// runResult holds the outcome of a single session.
type runResult struct {
	ticks     int32
	won       bool
	queenFood uint32
}

// Evaluate computes fitness for a parameter vector (lower = better).
// A win scores best, and a fast win beats a slow one; a losing run
// scores by how long the colony lasted plus the queen food banked.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fe.params.ApplyToConfig(config.Cfg(), x)

	total := 0.0
	for _, seed := range fe.seeds {
		r := fe.runSession(seed)
		total += fe.score(r)
	}
	return total / float64(len(fe.seeds))
}

func (fe *FitnessEvaluator) runSession(seed int64) runResult {
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 256,
	})
	defer g.Unload()

	for g.SessionState() == systems.Playing && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return runResult{
		ticks:     g.Tick(),
		won:       g.SessionState() == systems.Won,
		queenFood: g.QueenFood(),
	}
}

// score maps one run onto a minimization objective.
func (fe *FitnessEvaluator) score(r runResult) float64 {
	if r.won {
		// Wins dominate: faster wins are lower.
		return -float64(2*fe.maxTicks) + float64(r.ticks)
	}
	return -float64(r.ticks) - 10.0*float64(r.queenFood)
}
