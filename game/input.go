package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/anthill/systems"
)

const maxSpeed = 8

// handleInput processes keyboard input for the graphical mode.
func (g *Game) handleInput() {
	switch g.session.State() {
	case systems.Splash:
		if rl.IsKeyPressed(rl.KeyEnter) {
			g.startSession()
		}
		return
	case systems.Won, systems.Lost:
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyR) {
			g.Restart()
		}
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
		return
	}
	if rl.IsKeyPressed(rl.KeyU) {
		g.panel.Toggle()
	}

	// Create food, once the per-sample lottery has armed it. The
	// heap comes with a predator from each corner.
	if rl.IsKeyPressed(rl.KeyF) {
		g.CreateFood()
	}

	if rl.IsKeyPressed(rl.KeyEqual) && g.speed < maxSpeed {
		g.speed++
	}
	if rl.IsKeyPressed(rl.KeyMinus) && g.speed > 1 {
		g.speed--
	}
}
