package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/player"
)

type simContext struct {
	mPlayer   *player.Player
	deltaTime float32
}

func (ctx *simContext) jump() {
	movement := ctx.mPlayer.Movement()
	if !movement.Jumping() || !movement.OnGround() || movement.Flying() {
		return
	}

	newVel := movement.Vel()
	newVel[1] = math32.Max(game.JumpVelocity, newVel[1])
	movement.SetVel(newVel)
	movement.SetOnGround(false)
	ctx.mPlayer.Dbg.Notify(player.DebugModeMovementSim, true, "applied jump velocity: %v", newVel)
}

// calcVelocity advances the horizontal velocity from the current impulse. The
// friction, acceleration and speed bounds all come from the movement
// component, which resolves them against the active movement mode.
func (ctx *simContext) calcVelocity() {
	movement := ctx.mPlayer.Movement()
	impulse := movement.Impulse()

	forward, right := game.HeadingVectors(movement.Yaw())
	accelDir := forward.Mul(impulse.X()).Add(right.Mul(impulse.Y()))
	if lenSq := accelDir.LenSqr(); lenSq > 1 {
		accelDir = accelDir.Mul(1 / math32.Sqrt(lenSq))
	}

	maxSpeed := movement.MaxSpeed()
	zeroAccel := accelDir.LenSqr() < game.InputEpsilon*game.InputEpsilon
	exceedingMax := game.Vec3HzDistSqr(movement.Vel()) > maxSpeed*maxSpeed

	if (zeroAccel || exceedingMax) && movement.OnGround() {
		ctx.applyVelocityBraking()
	}
	if zeroAccel {
		return
	}

	vel := movement.Vel()
	hVel := mgl32.Vec3{vel.X(), 0, vel.Z()}

	// Friction only affects the ability to change direction; braking handles
	// slowing down. Airborne movement has no lateral friction.
	var friction float32
	if movement.OnGround() {
		friction = movement.GroundFriction()
	}
	if speed := hVel.Len(); friction > 0 && speed > 0 {
		hVel = hVel.Sub(hVel.Sub(accelDir.Mul(speed)).Mul(math32.Min(ctx.deltaTime*friction, 1)))
	}

	hVel = hVel.Add(accelDir.Mul(movement.MaxAcceleration() * ctx.deltaTime))
	if speedSq := hVel.LenSqr(); speedSq > maxSpeed*maxSpeed {
		hVel = hVel.Mul(maxSpeed / math32.Sqrt(speedSq))
	}

	vel[0], vel[2] = hVel.X(), hVel.Z()
	movement.SetVel(vel)
	ctx.mPlayer.Dbg.Notify(player.DebugModeMovementSim, true, "applied move acceleration: %v", vel)
}

// applyVelocityBraking decays the horizontal velocity with the braking
// friction and constant deceleration of the active mode, substepped so a
// large delta cannot overshoot past zero.
func (ctx *simContext) applyVelocityBraking() {
	movement := ctx.mPlayer.Movement()
	friction := movement.BrakingFriction() * game.BrakingFrictionFactor
	decel := movement.MaxBrakingDeceleration()
	if friction == 0 && decel == 0 {
		return
	}

	vel := movement.Vel()
	hVel := mgl32.Vec3{vel.X(), 0, vel.Z()}
	speed := hVel.Len()
	if speed < game.VelocityEpsilon {
		return
	}

	startDir := hVel.Mul(1 / speed)
	revAccel := startDir.Mul(-decel)

	remaining := ctx.deltaTime
	for remaining >= game.MinTickTime {
		step := math32.Min(remaining, game.BrakingSubstepTime)
		remaining -= step

		hVel = hVel.Add(hVel.Mul(-friction * step)).Add(revAccel.Mul(step))
		if hVel.Dot(startDir) <= 0 {
			hVel = mgl32.Vec3{}
			break
		}
	}

	// Snap to a stop below the threshold instead of decaying forever.
	if decel > 0 && hVel.Len() <= game.BrakeToStopVelocity {
		hVel = mgl32.Vec3{}
	}

	vel[0], vel[2] = hVel.X(), hVel.Z()
	movement.SetVel(vel)
	ctx.mPlayer.Dbg.Notify(player.DebugModeMovementSim, true, "applied velocity braking (friction=%.2f decel=%.2f): %v", friction, decel, vel)
}

func (ctx *simContext) applyGravity() {
	movement := ctx.mPlayer.Movement()
	if movement.OnGround() || movement.Flying() {
		return
	}
	newVel := movement.Vel()
	newVel[1] -= game.Gravity * ctx.deltaTime
	movement.SetVel(newVel)
}

// move integrates the position and resolves the grounded state against the
// ground plane.
func (ctx *simContext) move() {
	movement := ctx.mPlayer.Movement()
	vel := movement.Vel()
	newPos := movement.Pos().Add(vel.Mul(ctx.deltaTime))

	if newPos.Y() <= game.GroundLevel && vel.Y() <= 0 {
		newPos[1] = game.GroundLevel
		vel[1] = 0
		movement.SetOnGround(true)
	} else if newPos.Y() > game.GroundLevel {
		movement.SetOnGround(false)
	}

	movement.SetPos(newPos)
	movement.SetVel(vel)
}
