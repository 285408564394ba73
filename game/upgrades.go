package game

import (
	"log/slog"

	"github.com/pthm-cable/anthill/config"
	"github.com/pthm-cable/anthill/systems"
	"github.com/pthm-cable/anthill/ui"
)

// upgradeState tracks one upgrade's escalating price and effect.
type upgradeState struct {
	cost       uint32
	costStep   uint32
	amount     float64
	amountStep float64
}

func (u *upgradeState) buy() float64 {
	amount := u.amount
	u.cost += u.costStep
	u.amount += u.amountStep
	return amount
}

// upgradeLedger tracks the queen's shop. Prices and effect magnitudes
// escalate per purchase, independently per upgrade.
type upgradeLedger struct {
	spawn    upgradeState
	wave     upgradeState
	speed    upgradeState
	life     upgradeState
	sensing  upgradeState
	mutation upgradeState
}

func newUpgradeLedger() *upgradeLedger {
	uc := config.Cfg().Upgrades
	mk := func(c config.UpgradeConfig) upgradeState {
		return upgradeState{
			cost:       c.Cost,
			costStep:   c.CostStep,
			amount:     c.Amount,
			amountStep: c.AmountStep,
		}
	}
	return &upgradeLedger{
		spawn:    mk(uc.Spawn),
		wave:     mk(uc.Wave),
		speed:    mk(uc.Speed),
		life:     mk(uc.Life),
		sensing:  mk(uc.Sensing),
		mutation: mk(uc.Mutation),
	}
}

func (l *upgradeLedger) state(action ui.UpgradeAction) *upgradeState {
	switch action {
	case ui.UpgradeSpawn:
		return &l.spawn
	case ui.UpgradeWave:
		return &l.wave
	case ui.UpgradeSpeed:
		return &l.speed
	case ui.UpgradeLife:
		return &l.life
	case ui.UpgradeSensing:
		return &l.sensing
	case ui.UpgradeMutation:
		return &l.mutation
	}
	return nil
}

// rows builds the display model for the upgrade panel.
func (l *upgradeLedger) rows(queenFood uint32) []ui.UpgradeRow {
	row := func(action ui.UpgradeAction, label string, s *upgradeState) ui.UpgradeRow {
		return ui.UpgradeRow{
			Action:     action,
			Label:      label,
			Cost:       s.cost,
			Affordable: queenFood >= s.cost,
		}
	}
	return []ui.UpgradeRow{
		row(ui.UpgradeSpawn, "Spawn ants", &l.spawn),
		row(ui.UpgradeWave, "Bigger waves", &l.wave),
		row(ui.UpgradeSpeed, "Faster legs", &l.speed),
		row(ui.UpgradeLife, "Longer lives", &l.life),
		row(ui.UpgradeSensing, "Better antennas", &l.sensing),
		row(ui.UpgradeMutation, "Wilder mutation", &l.mutation),
	}
}

// purchase converts a pressed upgrade into ledger events. The cost is
// debited from the queen's store in the same batch; a purchase the
// queen cannot afford is refused.
func (g *Game) purchase(action ui.UpgradeAction) {
	s := g.upgrades.state(action)
	if s == nil {
		return
	}
	if g.hill.QueenFood < s.cost {
		return
	}

	cost := s.cost
	amount := s.buy()
	g.hillEvents = append(g.hillEvents, systems.HillEvent{
		Kind:   systems.EvRemoveFood,
		Amount: float32(cost),
	})

	switch action {
	case ui.UpgradeSpawn:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:  systems.EvSpawnAnts,
			Count: int(amount),
		})
	case ui.UpgradeWave:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:   systems.EvImproveSpawnCount,
			Amount: float32(amount),
		})
	case ui.UpgradeSpeed:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:   systems.EvImproveMaxSpeed,
			Amount: float32(amount),
		})
	case ui.UpgradeLife:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:   systems.EvImproveLifeExpectancy,
			Amount: float32(amount),
		})
	case ui.UpgradeSensing:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:   systems.EvImproveFoodSensing,
			Amount: float32(amount),
		})
	case ui.UpgradeMutation:
		g.hillEvents = append(g.hillEvents, systems.HillEvent{
			Kind:   systems.EvImproveMutation,
			Amount: float32(amount),
		})
	}

	slog.Info("upgrade purchased", "action", int(action), "cost", cost, "amount", amount)
}
