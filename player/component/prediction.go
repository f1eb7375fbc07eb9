package component

import (
	"sync"

	"github.com/predmove/predmove/assert"
	"github.com/predmove/predmove/player"
)

var movePool = sync.Pool{
	New: func() any {
		return &player.SavedMove{}
	},
}

// PredictionComponent implements player.PredictionComponent: the ordered,
// bounded window of saved moves the client has simulated ahead of server
// acknowledgment. Frames are strictly increasing; the window is trimmed from
// the front on acknowledgment and from the divergence point on mismatch.
type PredictionComponent struct {
	mPlayer *player.Player

	pending    []*player.SavedMove
	maxPending int
}

// NewPredictionComponent creates the prediction buffer for the given player.
func NewPredictionComponent(p *player.Player, maxPending int) *PredictionComponent {
	assert.IsTrue(p != nil, "parent player is nil")
	assert.IsTrue(maxPending > 0, "prediction window must hold at least one move")
	return &PredictionComponent{
		mPlayer:    p,
		pending:    make([]*player.SavedMove, 0, maxPending),
		maxPending: maxPending,
	}
}

// Acquire returns a cleared saved move from the pool.
func (pc *PredictionComponent) Acquire() *player.SavedMove {
	return movePool.Get().(*player.SavedMove)
}

// Record appends a finalized move to the window. If the window is full the
// oldest move is dropped; an un-acknowledged move older than the whole window
// can no longer be corrected anyway.
func (pc *PredictionComponent) Record(m *player.SavedMove) {
	if last := len(pc.pending); last > 0 {
		assert.IsTrue(m.Frame > pc.pending[last-1].Frame, "out-of-order move recorded (frame %d after %d)", m.Frame, pc.pending[last-1].Frame)
	}
	if len(pc.pending) == pc.maxPending {
		pc.Release(pc.pending[0])
		pc.pending = pc.pending[1:]
	}
	pc.pending = append(pc.pending, m)
}

// Capture builds and records a saved move from the player's post-tick state.
func (pc *PredictionComponent) Capture(deltaTime float32) *player.SavedMove {
	mov := pc.mPlayer.Movement()
	m := pc.Acquire()
	m.Frame = pc.mPlayer.SimulationFrame
	m.DeltaTime = deltaTime
	m.Impulse = mov.Impulse()
	m.Yaw = mov.Yaw()
	m.Flags = mov.IntentFlags()
	m.EndPos = mov.Pos()
	m.EndVel = mov.Vel()
	m.EndFlags = mov.EffectiveFlags()
	m.EndOnGround = mov.OnGround()
	pc.Record(m)
	return m
}

// Find returns the buffered move with the given frame, if present.
func (pc *PredictionComponent) Find(frame uint64) (*player.SavedMove, bool) {
	for _, m := range pc.pending {
		if m.Frame == frame {
			return m, true
		}
	}
	return nil, false
}

// AckTo releases every buffered move with a frame at or before the given
// frame. Because moves are acknowledged in order, a move older than the
// acknowledged one will never be acknowledged separately.
func (pc *PredictionComponent) AckTo(frame uint64) {
	idx := 0
	for idx < len(pc.pending) && pc.pending[idx].Frame <= frame {
		pc.Release(pc.pending[idx])
		idx++
	}
	pc.pending = pc.pending[idx:]
}

// DiscardFrom removes and returns every buffered move with a frame at or past
// the given frame. The caller owns the returned moves and releases them once
// replayed.
func (pc *PredictionComponent) DiscardFrom(frame uint64) []*player.SavedMove {
	for i, m := range pc.pending {
		if m.Frame >= frame {
			discarded := make([]*player.SavedMove, len(pc.pending)-i)
			copy(discarded, pc.pending[i:])
			pc.pending = pc.pending[:i]
			return discarded
		}
	}
	return nil
}

// Release clears the given moves and returns them to the pool.
func (pc *PredictionComponent) Release(moves ...*player.SavedMove) {
	for _, m := range moves {
		m.Clear()
		movePool.Put(m)
	}
}

// Pending returns the number of moves awaiting acknowledgment.
func (pc *PredictionComponent) Pending() int {
	return len(pc.pending)
}
