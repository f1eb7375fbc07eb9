// Package movement implements the per-tick locomotion simulation shared by
// the predicting client and the authoritative server. The solver itself is
// mode-agnostic: the movement component substitutes mode-specific bounds and
// friction into it while a mode is active.
package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/player"
)

// Simulate runs one locomotion tick for the player. It must be called exactly
// once per simulation frame, after intent transitions have been resolved by
// the movement component.
func Simulate(p *player.Player, deltaTime float32) {
	movement := p.Movement()
	if movement == nil || deltaTime < game.MinTickTime {
		return
	}

	p.Dbg.Notify(player.DebugModeMovementSim, true, "BEGIN movement sim for frame %d", p.SimulationFrame)
	defer p.Dbg.Notify(player.DebugModeMovementSim, true, "END movement sim for frame %d", p.SimulationFrame)

	ctx := newCtx(p, deltaTime)
	defer putCtx(ctx)

	if movement.Immobile() {
		movement.SetVel(mgl32.Vec3{})
		return
	}

	// Reset velocity components that are significantly small.
	initVel := movement.Vel()
	for i := range initVel {
		if math32.Abs(initVel[i]) < game.VelocityEpsilon {
			initVel[i] = 0
		}
	}
	movement.SetVel(initVel)

	ctx.jump()
	ctx.calcVelocity()
	ctx.applyGravity()
	ctx.move()
}
