package component

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/assert"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/utils"
)

// StrafeModeName is the name the strafing mode is registered under in the
// flag registry.
const StrafeModeName = "strafe"

// PredictedMovementComponent implements player.MovementComponent. It holds
// the base locomotion state plus the strafing mode state machine, and resolves
// the bounds and friction fed into the velocity solver against the mode that
// is currently active.
type PredictedMovementComponent struct {
	mPlayer *player.Player

	pos, lastPos mgl32.Vec3
	vel, lastVel mgl32.Vec3

	impulse mgl32.Vec2
	yaw     float32
	size    mgl32.Vec2

	onGround bool
	immobile bool
	flying   bool
	jumping  bool

	walk   mode.Params
	strafe mode.Params
	// useSeparateBrakingFriction selects the mode's braking friction instead
	// of its ground friction while braking.
	useSeparateBrakingFriction bool

	wantsStrafe bool
	strafing    bool
	strafeBit   uint8

	// exitRetryTicks is the cadence at which a deferred strafe exit is
	// retried after its stance fit check failed.
	exitRetryTicks     int
	exitRetryCountdown int
}

// NewPredictedMovementComponent creates the movement component for the given
// player. The strafing mode is registered in the given registry if it is not
// bound yet.
func NewPredictedMovementComponent(p *player.Player, s settings.Settings, reg *mode.Registry) *PredictedMovementComponent {
	assert.IsTrue(p != nil, "parent player is nil")
	bit, ok := reg.Bit(StrafeModeName)
	if !ok {
		bit = reg.Register(StrafeModeName)
	}

	return &PredictedMovementComponent{
		mPlayer: p,

		size: mgl32.Vec2{game.DefaultStanceWidth, game.DefaultStanceHeight},

		walk:                       s.Movement.Params(),
		strafe:                     s.Strafe.Params(),
		useSeparateBrakingFriction: s.Movement.UseSeparateBrakingFriction,

		strafeBit:      bit,
		exitRetryTicks: s.Strafe.ExitRetryTicks,
	}
}

// Pos returns the position of the movement component.
func (mc *PredictedMovementComponent) Pos() mgl32.Vec3 {
	return mc.pos
}

// SetPos sets the position of the movement component.
func (mc *PredictedMovementComponent) SetPos(newPos mgl32.Vec3) {
	mc.lastPos = mc.pos
	mc.pos = newPos
}

// Vel returns the velocity of the movement component.
func (mc *PredictedMovementComponent) Vel() mgl32.Vec3 {
	return mc.vel
}

// SetVel sets the velocity of the movement component.
func (mc *PredictedMovementComponent) SetVel(newVel mgl32.Vec3) {
	mc.lastVel = mc.vel
	mc.vel = newVel
}

// Impulse returns the movement impulse of the component. The X-axis contains
// the forward impulse, and the Y-axis contains the right impulse.
func (mc *PredictedMovementComponent) Impulse() mgl32.Vec2 {
	return mc.impulse
}

// SetImpulse sets the movement impulse of the component.
func (mc *PredictedMovementComponent) SetImpulse(newImpulse mgl32.Vec2) {
	mc.impulse = newImpulse
}

// Yaw returns the heading of the movement component in degrees.
func (mc *PredictedMovementComponent) Yaw() float32 {
	return mc.yaw
}

// SetYaw sets the heading of the movement component in degrees.
func (mc *PredictedMovementComponent) SetYaw(yaw float32) {
	mc.yaw = yaw
}

// Size returns the width and height of the movement component in a Vec2.
func (mc *PredictedMovementComponent) Size() mgl32.Vec2 {
	return mc.size
}

// OnGround returns true if the movement component is on the ground.
func (mc *PredictedMovementComponent) OnGround() bool {
	return mc.onGround
}

// SetOnGround sets whether or not the movement component is on the ground.
func (mc *PredictedMovementComponent) SetOnGround(onGround bool) {
	mc.onGround = onGround
}

// Immobile returns true if the movement component cannot move at all.
func (mc *PredictedMovementComponent) Immobile() bool {
	return mc.immobile
}

// SetImmobile sets whether or not the movement component can move.
func (mc *PredictedMovementComponent) SetImmobile(immobile bool) {
	mc.immobile = immobile
}

// Flying returns true if the movement component is in the flying state, which
// is mutually exclusive with strafing.
func (mc *PredictedMovementComponent) Flying() bool {
	return mc.flying
}

// SetFlying sets whether or not the movement component is flying.
func (mc *PredictedMovementComponent) SetFlying(flying bool) {
	mc.flying = flying
}

// Jumping returns true if the movement component expects a jump this tick.
func (mc *PredictedMovementComponent) Jumping() bool {
	return mc.jumping
}

// SetJumping sets whether or not the movement component expects a jump this
// tick.
func (mc *PredictedMovementComponent) SetJumping(jumping bool) {
	mc.jumping = jumping
}

// IsStrafing returns true if the strafing mode is currently active.
func (mc *PredictedMovementComponent) IsStrafing() bool {
	return mc.strafing
}

// WantsStrafe returns the current strafing intent.
func (mc *PredictedMovementComponent) WantsStrafe() bool {
	return mc.wantsStrafe
}

// CanStrafeInCurrentState returns true if the character is allowed to strafe
// in the current base locomotion state. By default it is allowed when walking
// or falling.
func (mc *PredictedMovementComponent) CanStrafeInCurrentState() bool {
	return !mc.immobile && !mc.flying
}

// Strafe sets the strafing intent and attempts immediate activation. The
// owner's strafe start callback fires exactly once per successful transition.
// Requesting an already active strafe is a no-op.
func (mc *PredictedMovementComponent) Strafe(clientSimulation bool) {
	mc.wantsStrafe = true
	if mc.strafing {
		return
	}
	if !clientSimulation && !mc.CanStrafeInCurrentState() {
		return
	}
	mc.activateStrafe()
}

// UnStrafe clears the strafing intent and attempts immediate deactivation.
// Deactivation is deferred while the default stance does not fit at the
// current position; the attempt is retried on the configured cadence until it
// succeeds. Cancelling an already inactive strafe is a no-op.
func (mc *PredictedMovementComponent) UnStrafe(clientSimulation bool) {
	mc.wantsStrafe = false
	if !mc.strafing {
		return
	}
	if !clientSimulation && !mc.canFitDefaultStance() {
		mc.exitRetryCountdown = mc.exitRetryTicks - 1
		return
	}
	mc.deactivateStrafe()
}

// IntentFlags packs the current intent bits into the compressed flag byte.
func (mc *PredictedMovementComponent) IntentFlags() byte {
	var flags byte
	flags = utils.WithFlag(flags, mode.BitJump, mc.jumping)
	flags = utils.WithFlag(flags, mc.strafeBit, mc.wantsStrafe)
	return flags
}

// EffectiveFlags packs the confirmed/predicted active mode bits.
func (mc *PredictedMovementComponent) EffectiveFlags() byte {
	var flags byte
	flags = utils.WithFlag(flags, mc.strafeBit, mc.strafing)
	return flags
}

// UpdateFromFlags applies a received compressed intent byte. Only intent is
// updated here; the transitions it implies resolve on the next simulated tick.
func (mc *PredictedMovementComponent) UpdateFromFlags(flags byte) {
	mc.jumping = utils.HasFlag(flags, mode.BitJump)
	mc.wantsStrafe = utils.HasFlag(flags, mc.strafeBit)
}

// UpdateStateBeforeMovement resolves strafe transitions ahead of the tick's
// velocity computation.
func (mc *PredictedMovementComponent) UpdateStateBeforeMovement(deltaTime float32) {
	if mc.strafing && (!mc.wantsStrafe || !mc.CanStrafeInCurrentState()) {
		mc.tryExitStrafe()
	} else if !mc.strafing && mc.wantsStrafe && mc.CanStrafeInCurrentState() {
		mc.activateStrafe()
	}
}

// UpdateStateAfterMovement re-validates the active strafe against the base
// state reached by the tick.
func (mc *PredictedMovementComponent) UpdateStateAfterMovement(deltaTime float32) {
	if mc.strafing && !mc.CanStrafeInCurrentState() {
		mc.tryExitStrafe()
	}
}

// RestoreAuthoritative installs a server-confirmed state ahead of a
// correction replay. The effective mode bits are adopted verbatim without
// transition validation or callbacks; intent is left untouched since it
// belongs to the local player.
func (mc *PredictedMovementComponent) RestoreAuthoritative(pos, vel mgl32.Vec3, flags byte, onGround bool) {
	mc.pos, mc.lastPos = pos, pos
	mc.vel, mc.lastVel = vel, vel
	mc.onGround = onGround
	mc.strafing = utils.HasFlag(flags, mc.strafeBit)
	mc.exitRetryCountdown = 0
}

// MaxAcceleration returns the maximum acceleration of the active mode.
func (mc *PredictedMovementComponent) MaxAcceleration() float32 {
	if mc.strafing {
		return mc.strafe.MaxAcceleration
	}
	return mc.walk.MaxAcceleration
}

// MaxSpeed returns the maximum ground speed of the active mode.
func (mc *PredictedMovementComponent) MaxSpeed() float32 {
	if mc.strafing {
		return mc.strafe.MaxSpeed
	}
	return mc.walk.MaxSpeed
}

// MaxBrakingDeceleration returns the braking deceleration of the active mode.
func (mc *PredictedMovementComponent) MaxBrakingDeceleration() float32 {
	if mc.strafing {
		return mc.strafe.BrakingDeceleration
	}
	return mc.walk.BrakingDeceleration
}

// GroundFriction returns the friction fed into the velocity solver. The
// strafing value substitutes the base one only while strafing on ground.
func (mc *PredictedMovementComponent) GroundFriction() float32 {
	if mc.strafing && mc.onGround {
		return mc.strafe.GroundFriction
	}
	return mc.walk.GroundFriction
}

// BrakingFriction returns the friction used while braking, resolved against
// the active mode and the separate-braking-friction option.
func (mc *PredictedMovementComponent) BrakingFriction() float32 {
	if mc.strafing && mc.onGround {
		if mc.useSeparateBrakingFriction {
			return mc.strafe.BrakingFriction
		}
		return mc.strafe.GroundFriction
	}
	if mc.useSeparateBrakingFriction {
		return mc.walk.BrakingFriction
	}
	return mc.walk.GroundFriction
}

// tryExitStrafe attempts a deferred strafe exit on the configured retry
// cadence. The state remains active until the stance fit check succeeds.
func (mc *PredictedMovementComponent) tryExitStrafe() {
	if mc.exitRetryCountdown > 0 {
		mc.exitRetryCountdown--
		return
	}
	if !mc.canFitDefaultStance() {
		mc.mPlayer.Dbg.Notify(player.DebugModeMovementSim, true, "strafe exit deferred: default stance does not fit at %v", mc.pos)
		mc.exitRetryCountdown = mc.exitRetryTicks - 1
		return
	}
	mc.deactivateStrafe()
}

func (mc *PredictedMovementComponent) activateStrafe() {
	mc.strafing = true
	mc.exitRetryCountdown = 0
	if !mc.mPlayer.Replaying() {
		mc.mPlayer.Handler().OnStrafeStart()
	}
}

func (mc *PredictedMovementComponent) deactivateStrafe() {
	mc.strafing = false
	mc.exitRetryCountdown = 0
	if !mc.mPlayer.Replaying() {
		mc.mPlayer.Handler().OnStrafeEnd()
	}
}

// canFitDefaultStance consults the injected geometry collaborator. With no
// collaborator injected the default stance always fits.
func (mc *PredictedMovementComponent) canFitDefaultStance() bool {
	fc := mc.mPlayer.FitChecker()
	if fc == nil {
		return true
	}
	return fc.CanFitAtDefaultStance(mc.pos, mc.defaultStanceBox())
}

// defaultStanceBox returns the bounding box of the default stance translated
// to the current position.
func (mc *PredictedMovementComponent) defaultStanceBox() cube.BBox {
	width := mc.size[0] / 2
	return cube.Box(
		mc.pos[0]-width,
		mc.pos[1],
		mc.pos[2]-width,
		mc.pos[0]+width,
		mc.pos[1]+game.DefaultStanceHeight,
		mc.pos[2]+width,
	)
}
