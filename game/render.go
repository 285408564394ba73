package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
	"github.com/pthm-cable/anthill/systems"
	"github.com/pthm-cable/anthill/ui"
)

// worldToScreen maps a world point onto the screen, origin centered.
func (g *Game) worldToScreen(x, z float32) (int32, int32) {
	cfg := config.Cfg()
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)
	scale := g.worldScale()
	return int32(w/2 + x*scale), int32(h/2 + z*scale)
}

// worldScale is pixels per world unit, sized so the rim fits with a
// small margin.
func (g *Game) worldScale() float32 {
	cfg := config.Cfg()
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)
	short := w
	if h < short {
		short = h
	}
	return short / (2.1 * cfg.Derived.Border32)
}

// Draw renders the world and UI for one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.NewColor(24, 20, 16, 255))

	switch g.session.State() {
	case systems.Splash:
		g.hud.DrawCenteredBanner("ANTHILL", "press [Enter] to found the colony",
			int32(config.Cfg().Screen.Width), int32(config.Cfg().Screen.Height), rl.White)
		return
	case systems.Won:
		g.drawWorld()
		g.hud.DrawCenteredBanner("THE COLONY PREVAILS", g.endStats()+"  press [Enter] to play again",
			int32(config.Cfg().Screen.Width), int32(config.Cfg().Screen.Height), rl.Green)
		return
	case systems.Lost:
		g.drawWorld()
		g.hud.DrawCenteredBanner("THE COLONY HAS FALLEN", g.endStats()+"  press [Enter] to try again",
			int32(config.Cfg().Screen.Width), int32(config.Cfg().Screen.Height), rl.Red)
		return
	}

	g.drawWorld()
	g.drawHUD()
}

// endStats summarizes the finished session for the end screens.
func (g *Game) endStats() string {
	return fmt.Sprintf("%.0fs, peak %d ants, %d spawned.",
		g.session.Elapsed(), g.session.MaxPopulation(), g.hill.TotalSpawned)
}

func (g *Game) drawWorld() {
	g.drawTerrain()
	g.drawRim()
	g.drawHill()
	g.drawHeaps()
	g.drawAnts()
	g.drawEaters()
}

// drawTerrain shades blocked cells inside the visible rim.
func (g *Game) drawTerrain() {
	cfg := config.Cfg()
	border := cfg.Derived.Border32
	cell := float32(1.0 / cfg.World.Def)
	scale := g.worldScale()
	size := int32(cell*scale) + 1

	for x := -border; x < border; x += cell {
		for z := -border; z < border; z += cell {
			if !g.obstacles.IsObstacle(x, z) {
				continue
			}
			sx, sz := g.worldToScreen(x, z)
			rl.DrawRectangle(sx, sz, size, size, rl.NewColor(60, 52, 40, 255))
		}
	}
}

func (g *Game) drawRim() {
	cx, cz := g.worldToScreen(0, 0)
	r := config.Cfg().Derived.Border32 * g.worldScale()
	rl.DrawCircleLines(cx, cz, r, rl.NewColor(90, 80, 60, 255))
}

func (g *Game) drawHill() {
	cx, cz := g.worldToScreen(0, 0)
	scale := g.worldScale()
	rl.DrawCircle(cx, cz, 0.08*scale, rl.NewColor(140, 90, 40, 255))
	rl.DrawCircle(cx, cz, 0.03*scale, rl.NewColor(80, 50, 20, 255))
}

func (g *Game) drawHeaps() {
	scale := g.worldScale()
	for _, h := range g.economy.Heaps() {
		for _, p := range h.Pellets {
			sx, sz := g.worldToScreen(p.X, p.Z)
			c := rl.NewColor(180, 220, 80, 255)
			if p.Targeted {
				c = rl.NewColor(220, 200, 60, 255)
			}
			rl.DrawCircle(sx, sz, maxf(0.008*scale, 1), c)
		}
	}
}

func (g *Game) drawAnts() {
	scale := g.worldScale()
	g.ants.Each(func(_ ecs.Entity, pos *components.Position, vel *components.Velocity, ant *components.Ant) {
		sx, sz := g.worldToScreen(pos.X, pos.Z)
		c := rl.NewColor(220, 220, 220, 255)
		if ant.State.Kind == components.CarryingFood {
			c = rl.NewColor(240, 210, 90, 255)
		}
		g.drawAgent(float32(sx), float32(sz), systems.Yaw(*vel), maxf(0.015*scale, 2), c)
	})
}

func (g *Game) drawEaters() {
	scale := g.worldScale()
	g.eaters.Each(func(_ ecs.Entity, pos *components.Position, vel *components.Velocity, _ *components.AntEater) {
		sx, sz := g.worldToScreen(pos.X, pos.Z)
		g.drawAgent(float32(sx), float32(sz), systems.Yaw(*vel), maxf(0.06*scale, 5), rl.NewColor(180, 60, 60, 255))
	})
}

// drawAgent renders a facing triangle. Yaw is measured from the +Z
// axis, which points down the screen.
func (g *Game) drawAgent(x, y, yaw, size float32, c rl.Color) {
	sin := float32(math.Sin(float64(yaw)))
	cos := float32(math.Cos(float64(yaw)))

	tip := rl.Vector2{X: x + sin*size, Y: y + cos*size}
	left := rl.Vector2{X: x - sin*size*0.6 + cos*size*0.4, Y: y - cos*size*0.6 - sin*size*0.4}
	right := rl.Vector2{X: x - sin*size*0.6 - cos*size*0.4, Y: y - cos*size*0.6 + sin*size*0.4}
	rl.DrawTriangle(tip, left, right, c)
}

func (g *Game) drawHUD() {
	cfg := config.Cfg()
	sw := int32(cfg.Screen.Width)
	sh := int32(cfg.Screen.Height)

	g.hud.Draw(ui.HUDData{
		Population:     g.ants.Population,
		Predators:      g.eaters.Count,
		Heaps:          len(g.economy.Heaps()),
		Pellets:        g.economy.PelletCount(),
		QueenFood:      g.hill.QueenFood,
		WorkerFood:     g.hill.WorkerFood,
		MaxPopulation:  g.session.MaxPopulation(),
		EvolveProgress: g.hill.EvolveProgress(),
		Tick:           g.tick,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		SessionState:   g.session.State().String(),
		Elapsed:        g.session.Elapsed(),
		Apocalypse:     g.session.ApocalypseActive(),
		FoodReady:      g.session.FoodSummonReady(),
		ScreenWidth:    sw,
		ScreenHeight:   sh,
	})
	g.hud.DrawPopulationPlot(g.session.History(), sw, sh)

	if g.speed > 1 {
		rl.DrawText(fmt.Sprintf("%dx", g.speed), sw-40, 10, 20, rl.Yellow)
	}

	if action := g.panel.Draw(g.upgrades.rows(g.hill.QueenFood)); action != ui.UpgradeNone {
		g.purchase(action)
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
