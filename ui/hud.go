package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the main HUD renders.
type HUDData struct {
	Population   int
	Predators    int
	Heaps        int
	Pellets      int
	QueenFood    uint32
	WorkerFood   uint32
	MaxPopulation  uint32
	EvolveProgress float64
	Tick           int32
	FPS            int32
	Paused         bool
	SessionState   string
	Elapsed        float64
	Apocalypse     bool
	FoodReady      bool
	ScreenWidth    int32
	ScreenHeight   int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Anthill", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Ants: %d | Eaters: %d | Heaps: %d | Pellets: %d",
			data.Population, data.Predators, data.Heaps, data.Pellets),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Queen: %d | Stores: %d | Peak: %d | %.0fs | Tick: %d | FPS: %d",
			data.QueenFood, data.WorkerFood, data.MaxPopulation, data.Elapsed, data.Tick, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	color := rl.Yellow
	if data.Paused {
		status = "PAUSED"
	}
	if data.Apocalypse {
		status = "APOCALYPSE"
		color = rl.Red
	}
	rl.DrawText(status, 10, 75, 16, color)

	h.drawEvolveBar(data.EvolveProgress)

	keys := "[Space] pause  [U] upgrades  [R] restart"
	if data.FoodReady {
		keys += "  [F] create food"
	}
	rl.DrawText(keys, 10, data.ScreenHeight-25, 14, rl.Gray)
}

// drawEvolveBar renders progress toward the next evolution pass.
func (h *HUD) drawEvolveBar(progress float64) {
	const barW, barH = 120, 8
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	rl.DrawRectangleLines(10, 98, barW, barH, rl.Gray)
	rl.DrawRectangle(11, 99, int32(float64(barW-2)*progress), barH-2, rl.Purple)
	rl.DrawText("evolution", 10+barW+6, 95, 12, rl.Gray)
}

// DrawPopulationPlot renders the sampled population history as a line
// plot in the bottom-right corner.
func (h *HUD) DrawPopulationPlot(history []uint32, screenW, screenH int32) {
	const plotW, plotH = 240, 80
	x0 := screenW - plotW - 10
	y0 := screenH - plotH - 10

	rl.DrawRectangle(x0, y0, plotW, plotH, rl.Fade(rl.Black, 0.5))
	rl.DrawRectangleLines(x0, y0, plotW, plotH, rl.Gray)
	rl.DrawText("population", x0+5, y0+5, 10, rl.Gray)

	if len(history) < 2 {
		return
	}

	var peak uint32 = 1
	for _, v := range history {
		if v > peak {
			peak = v
		}
	}

	step := float32(plotW) / float32(len(history)-1)
	for i := 1; i < len(history); i++ {
		x1 := float32(x0) + float32(i-1)*step
		x2 := float32(x0) + float32(i)*step
		y1 := float32(y0+plotH) - float32(history[i-1])/float32(peak)*float32(plotH-4)
		y2 := float32(y0+plotH) - float32(history[i])/float32(peak)*float32(plotH-4)
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, rl.Green)
	}
}

// DrawCenteredBanner renders the splash, victory and defeat screens.
func (h *HUD) DrawCenteredBanner(title, subtitle string, screenW, screenH int32, color rl.Color) {
	tw := rl.MeasureText(title, 40)
	rl.DrawText(title, (screenW-tw)/2, screenH/2-40, 40, color)
	sw := rl.MeasureText(subtitle, 20)
	rl.DrawText(subtitle, (screenW-sw)/2, screenH/2+10, 20, rl.LightGray)
}
