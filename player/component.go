package player

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/wire"
)

// MovementComponent simulates the locomotion state of the player and drives
// the movement mode state machine layered on top of it.
type MovementComponent interface {
	Pos() mgl32.Vec3
	SetPos(newPos mgl32.Vec3)
	Vel() mgl32.Vec3
	SetVel(newVel mgl32.Vec3)
	Impulse() mgl32.Vec2
	SetImpulse(newImpulse mgl32.Vec2)
	Yaw() float32
	SetYaw(yaw float32)
	Size() mgl32.Vec2
	OnGround() bool
	SetOnGround(onGround bool)
	Immobile() bool
	SetImmobile(immobile bool)
	Flying() bool
	SetFlying(flying bool)
	Jumping() bool
	SetJumping(jumping bool)

	// Strafe attempts to activate the strafing mode, setting the intent bit
	// regardless of the outcome. clientSimulation skips validation for state
	// replicated from elsewhere.
	Strafe(clientSimulation bool)
	// UnStrafe attempts to deactivate the strafing mode, clearing the intent
	// bit regardless of the outcome. Deactivation is deferred while the
	// character does not fit back into its default stance.
	UnStrafe(clientSimulation bool)
	IsStrafing() bool
	WantsStrafe() bool
	// CanStrafeInCurrentState reports whether the base locomotion state
	// currently allows strafing to activate.
	CanStrafeInCurrentState() bool

	// IntentFlags packs the current intent bits into the compressed byte
	// sent with a move.
	IntentFlags() byte
	// EffectiveFlags packs the confirmed/predicted active mode bits.
	EffectiveFlags() byte
	// UpdateFromFlags applies a received compressed intent byte. It only
	// updates intent; transitions resolve on the next simulated tick.
	UpdateFromFlags(flags byte)

	// UpdateStateBeforeMovement resolves mode transitions ahead of the tick's
	// velocity computation.
	UpdateStateBeforeMovement(deltaTime float32)
	// UpdateStateAfterMovement re-validates the active mode against the base
	// state reached by the tick.
	UpdateStateAfterMovement(deltaTime float32)

	// RestoreAuthoritative installs a server-confirmed state ahead of a
	// correction replay, bypassing transition validation and callbacks.
	RestoreAuthoritative(pos, vel mgl32.Vec3, flags byte, onGround bool)

	// Bounds and friction fed into the velocity solver, resolved against the
	// active movement mode.
	MaxAcceleration() float32
	MaxSpeed() float32
	MaxBrakingDeceleration() float32
	GroundFriction() float32
	BrakingFriction() float32
}

// SavedMove records one simulated tick of the predicting side: the input that
// produced it and the state it ended in. It is immutable once recorded; Clear
// resets it for reuse through the component's pool.
type SavedMove struct {
	Frame     uint64
	DeltaTime float32

	Impulse mgl32.Vec2
	Yaw     float32
	// Flags is the compressed intent byte the move was simulated with.
	Flags byte

	EndPos mgl32.Vec3
	EndVel mgl32.Vec3
	// EndFlags is the effective mode byte after the tick.
	EndFlags    byte
	EndOnGround bool
}

// Clear resets the saved move to its default state so it can be re-used.
func (m *SavedMove) Clear() {
	*m = SavedMove{}
}

// Matches reports whether the other move is combinable with this one: all
// flag bits must be equal and all continuous inputs equal within epsilon.
func (m *SavedMove) Matches(other *SavedMove) bool {
	return m.Flags == other.Flags &&
		game.Vec2ApproxEq(m.Impulse, other.Impulse) &&
		game.Float32ApproxEq(m.Yaw, other.Yaw) &&
		game.Float32ApproxEq(m.DeltaTime, other.DeltaTime)
}

// PredictionComponent owns the ordered window of saved moves awaiting server
// acknowledgment.
type PredictionComponent interface {
	// Acquire returns a cleared saved move from the pool.
	Acquire() *SavedMove
	// Record appends a finalized move. Frames must be strictly increasing.
	Record(m *SavedMove)
	// Capture builds and records a saved move from the player's post-tick
	// state, returning it.
	Capture(deltaTime float32) *SavedMove
	// Find returns the buffered move with the given frame, if present.
	Find(frame uint64) (*SavedMove, bool)
	// AckTo releases every buffered move with a frame at or before the given
	// frame.
	AckTo(frame uint64)
	// DiscardFrom removes and returns every buffered move with a frame at or
	// past the given frame. The caller releases them once replayed.
	DiscardFrom(frame uint64) []*SavedMove
	// Release returns moves to the pool.
	Release(moves ...*SavedMove)
	Pending() int
}

// ReconciliationComponent resolves divergence between the local prediction and
// authoritative snapshots pushed from the network layer.
type ReconciliationComponent interface {
	ProcessSnapshot(snap wire.Snapshot)
}

// FitChecker is the geometry collaborator consulted when a mode that changes
// stance transitions back to inactive.
type FitChecker interface {
	// CanFitAtDefaultStance reports whether the default stance bounding box
	// fits at the given position without encroaching geometry.
	CanFitAtDefaultStance(pos mgl32.Vec3, box cube.BBox) bool
}
