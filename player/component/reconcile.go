package component

import (
	"github.com/predmove/predmove/assert"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/player/movement"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/wire"
)

// ReconciliationComponent implements player.ReconciliationComponent. It
// compares authoritative snapshots against the buffered prediction and, on
// divergence, discards the stale tail of the window and resimulates it from
// the authoritative state. Divergence is recoverable by design and is never
// surfaced as an error.
type ReconciliationComponent struct {
	mPlayer *player.Player

	posThreshold float32
}

// NewReconciliationComponent creates the reconciliation component for the
// given player.
func NewReconciliationComponent(p *player.Player, s settings.Settings) *ReconciliationComponent {
	assert.IsTrue(p != nil, "parent player is nil")
	return &ReconciliationComponent{
		mPlayer:      p,
		posThreshold: s.Prediction.PositionThreshold,
	}
}

// ProcessSnapshot resolves one authoritative snapshot against the prediction
// window. Snapshots for frames no longer buffered are expected under normal
// window management and silently ignored.
func (rc *ReconciliationComponent) ProcessSnapshot(snap wire.Snapshot) {
	pred, mov := rc.mPlayer.Prediction(), rc.mPlayer.Movement()

	m, ok := pred.Find(snap.Frame)
	if !ok {
		rc.mPlayer.Dbg.Notify(player.DebugModeReconcile, true, "stale snapshot for frame %d ignored", snap.Frame)
		return
	}

	if rc.agrees(m, snap) {
		pred.AckTo(snap.Frame)
		return
	}

	rc.mPlayer.Dbg.Notify(
		player.DebugModeReconcile,
		true,
		"mismatch at frame %d (predicted pos=%v flags=%08b, authoritative pos=%v flags=%08b)",
		snap.Frame, m.EndPos, m.EndFlags, snap.Pos, snap.Flags,
	)

	// Moves after the snapshot frame are resimulated from the authoritative
	// state; everything at or before it is settled either way.
	replay := pred.DiscardFrom(snap.Frame + 1)
	pred.AckTo(snap.Frame)

	wasStrafing := mov.IsStrafing()
	liveFrame := rc.mPlayer.SimulationFrame
	liveIntent := mov.IntentFlags()

	mov.RestoreAuthoritative(snap.Pos, snap.Vel, snap.Flags, snap.OnGround)

	// Replay is synchronous: it completes before the next live tick so the
	// window never holds out-of-order entries. Mode callbacks stay suppressed
	// for its duration.
	rc.mPlayer.SetReplaying(true)
	for _, old := range replay {
		rc.mPlayer.SimulationFrame = old.Frame
		mov.UpdateFromFlags(old.Flags)
		mov.SetImpulse(old.Impulse)
		mov.SetYaw(old.Yaw)

		mov.UpdateStateBeforeMovement(old.DeltaTime)
		movement.Simulate(rc.mPlayer, old.DeltaTime)
		mov.UpdateStateAfterMovement(old.DeltaTime)

		pred.Capture(old.DeltaTime)
	}
	pred.Release(replay...)
	rc.mPlayer.SimulationFrame = liveFrame
	mov.UpdateFromFlags(liveIntent)
	rc.mPlayer.SetReplaying(false)

	// The replay may have landed on a different effective mode state than the
	// prediction had. Emit the net transition edge exactly once.
	if strafing := mov.IsStrafing(); strafing != wasStrafing {
		if strafing {
			rc.mPlayer.Handler().OnStrafeStart()
		} else {
			rc.mPlayer.Handler().OnStrafeEnd()
		}
	}
	rc.mPlayer.Handler().OnCorrection(snap.Frame)
}

// agrees reports whether the recorded move's end state matches the
// authoritative snapshot: mode bits exactly, position within the configured
// threshold.
func (rc *ReconciliationComponent) agrees(m *player.SavedMove, snap wire.Snapshot) bool {
	if m.EndFlags != snap.Flags || m.EndOnGround != snap.OnGround {
		return false
	}
	delta := m.EndPos.Sub(snap.Pos)
	return delta.Dot(delta) <= rc.posThreshold*rc.posThreshold
}
