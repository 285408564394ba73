package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// UpgradeAction identifies a button on the upgrade panel.
type UpgradeAction int

const (
	// UpgradeNone means no button was pressed this frame.
	UpgradeNone UpgradeAction = iota
	// UpgradeSpawn buys an immediate wave of ants.
	UpgradeSpawn
	// UpgradeWave enlarges future financed waves.
	UpgradeWave
	// UpgradeSpeed raises the colony's top speed.
	UpgradeSpeed
	// UpgradeLife raises the colony's life expectancy.
	UpgradeLife
	// UpgradeSensing raises the colony's food sensing range.
	UpgradeSensing
	// UpgradeMutation widens spawn mutation and evolution drift.
	UpgradeMutation
)

// UpgradeRow describes one purchasable upgrade for display.
type UpgradeRow struct {
	Action     UpgradeAction
	Label      string
	Cost       uint32
	Affordable bool
}

// Panel renders the upgrade shop. It is display-only; purchase
// bookkeeping lives with the caller.
type Panel struct {
	x, y    int32
	width   int32
	visible bool
}

// NewPanel creates an upgrade panel anchored at (x, y).
func NewPanel(x, y, width int32) *Panel {
	return &Panel{x: x, y: y, width: width}
}

// Toggle switches panel visibility and reports the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Draw renders the rows and returns the pressed action, if any.
// Unaffordable rows render disabled.
func (p *Panel) Draw(rows []UpgradeRow) UpgradeAction {
	if !p.visible {
		return UpgradeNone
	}

	const rowHeight = 34
	height := int32(len(rows))*rowHeight + 40
	rl.DrawRectangle(p.x, p.y, p.width, height, rl.Fade(rl.Black, 0.7))
	rl.DrawRectangleLines(p.x, p.y, p.width, height, rl.Gray)
	rl.DrawText("Queen's upgrades", p.x+10, p.y+10, 16, rl.White)

	pressed := UpgradeNone
	y := p.y + 34
	for _, row := range rows {
		label := fmt.Sprintf("%s (%d)", row.Label, row.Cost)
		bounds := rl.Rectangle{
			X:      float32(p.x + 10),
			Y:      float32(y),
			Width:  float32(p.width - 20),
			Height: rowHeight - 6,
		}
		if !row.Affordable {
			gui.Disable()
		}
		if gui.Button(bounds, label) && row.Affordable {
			pressed = row.Action
		}
		if !row.Affordable {
			gui.Enable()
		}
		y += rowHeight
	}
	return pressed
}
