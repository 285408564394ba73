package systems

import "github.com/pthm-cable/anthill/components"

// HillEventKind identifies a ledger mutation requested by another
// system or by player input. Events are queued during a tick and
// applied to the hill in submission order before the next tick.
type HillEventKind uint8

const (
	// EvReplenishFood credits food units to the ledger, each routed to
	// the queen with probability Ratio. An attached genome joins the
	// evolution queue.
	EvReplenishFood HillEventKind = iota
	// EvRemoveFood debits the queen's food store, clamping at zero.
	EvRemoveFood
	// EvSpawnAnts requests a wave of new foragers, bypassing financing.
	EvSpawnAnts
	// EvImproveSpawnCount raises the size of future spawn waves.
	EvImproveSpawnCount
	// EvImproveMaxSpeed shifts the colony genome's top speed.
	EvImproveMaxSpeed
	// EvImproveLifeExpectancy shifts the colony genome's lifespan.
	EvImproveLifeExpectancy
	// EvImproveFoodSensing shifts the colony genome's sensing radius.
	EvImproveFoodSensing
	// EvImproveMutation raises the amplitude of spawn-time mutation.
	EvImproveMutation
	// EvStoreGenome appends a dead forager's genome to the evolution queue.
	EvStoreGenome
)

// HillEvent is one queued ledger mutation. Amount carries the
// magnitude for food and improvement events, Count sizes spawn waves
// and replenishments, Ratio routes replenished units, and Genome rides
// along for EvStoreGenome or a replenishment that carries one.
type HillEvent struct {
	Kind      HillEventKind
	Amount    float32
	Count     int
	Ratio     float32
	Genome    components.Genome
	HasGenome bool
}

// WorldEventKind identifies a world mutation requested by a system
// that must not mutate shared state mid-iteration.
type WorldEventKind uint8

const (
	// EvSummonPredator spawns one ant-eater at the event's position.
	EvSummonPredator WorldEventKind = iota
)

// WorldEvent is one queued world mutation anchored at a position.
type WorldEvent struct {
	Kind WorldEventKind
	X, Z float32
}
