package component

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/settings"
	"github.com/sirupsen/logrus"
)

func newPredictionTestPlayer(maxPending int) (*player.Player, *PredictionComponent) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	conf := settings.Default()
	conf.Prediction.MaxPendingMoves = maxPending

	p := player.New(log, false)
	Register(p, conf, mode.NewRegistry())
	return p, p.Prediction().(*PredictionComponent)
}

func TestPredictionCaptureRecordsPostTickState(t *testing.T) {
	p, pred := newPredictionTestPlayer(8)
	mov := p.Movement()

	p.SimulationFrame = 10
	mov.SetImpulse(mgl32.Vec2{1, 0})
	mov.SetYaw(45)
	mov.SetPos(mgl32.Vec3{1, 0, 2})
	mov.SetVel(mgl32.Vec3{0, 0, 100})
	mov.SetOnGround(true)

	m := pred.Capture(game.StandardDelta)
	if m.Frame != 10 {
		t.Fatalf("expected frame 10, got %d", m.Frame)
	}
	if m.EndPos != mov.Pos() || m.EndVel != mov.Vel() || !m.EndOnGround {
		t.Fatalf("expected captured end state to match the component, got %+v", m)
	}

	found, ok := pred.Find(10)
	if !ok || found != m {
		t.Fatal("expected the captured move to be buffered")
	}
	if pred.Pending() != 1 {
		t.Fatalf("expected one pending move, got %d", pred.Pending())
	}
}

func TestPredictionAckTrimsFront(t *testing.T) {
	p, pred := newPredictionTestPlayer(8)

	for frame := uint64(1); frame <= 5; frame++ {
		p.SimulationFrame = frame
		pred.Capture(game.StandardDelta)
	}

	pred.AckTo(3)
	if pred.Pending() != 2 {
		t.Fatalf("expected 2 moves after ack, got %d", pred.Pending())
	}
	if _, ok := pred.Find(3); ok {
		t.Fatal("expected frame 3 released")
	}
	if _, ok := pred.Find(4); !ok {
		t.Fatal("expected frame 4 retained")
	}
}

func TestPredictionDiscardFromReturnsTail(t *testing.T) {
	p, pred := newPredictionTestPlayer(8)

	for frame := uint64(1); frame <= 5; frame++ {
		p.SimulationFrame = frame
		pred.Capture(game.StandardDelta)
	}

	tail := pred.DiscardFrom(4)
	if len(tail) != 2 {
		t.Fatalf("expected 2 discarded moves, got %d", len(tail))
	}
	if tail[0].Frame != 4 || tail[1].Frame != 5 {
		t.Fatalf("expected frames 4 and 5, got %d and %d", tail[0].Frame, tail[1].Frame)
	}
	if pred.Pending() != 3 {
		t.Fatalf("expected 3 moves retained, got %d", pred.Pending())
	}
	pred.Release(tail...)
}

func TestPredictionWindowDropsOldestWhenFull(t *testing.T) {
	p, pred := newPredictionTestPlayer(3)

	for frame := uint64(1); frame <= 4; frame++ {
		p.SimulationFrame = frame
		pred.Capture(game.StandardDelta)
	}

	if pred.Pending() != 3 {
		t.Fatalf("expected the window capped at 3, got %d", pred.Pending())
	}
	if _, ok := pred.Find(1); ok {
		t.Fatal("expected the oldest move dropped")
	}
	if _, ok := pred.Find(4); !ok {
		t.Fatal("expected the newest move retained")
	}
}

func TestPredictionRecordRejectsOutOfOrderFrames(t *testing.T) {
	p, pred := newPredictionTestPlayer(8)

	p.SimulationFrame = 5
	pred.Capture(game.StandardDelta)

	defer func() {
		if recover() == nil {
			t.Fatal("expected an out-of-order record to panic")
		}
	}()
	p.SimulationFrame = 5
	pred.Capture(game.StandardDelta)
}

func TestSavedMoveMatches(t *testing.T) {
	a := &player.SavedMove{DeltaTime: 0.05, Impulse: mgl32.Vec2{1, 0}, Yaw: 90, Flags: 0b10000}
	b := &player.SavedMove{DeltaTime: 0.05, Impulse: mgl32.Vec2{1, 1e-6}, Yaw: 90.000001, Flags: 0b10000}
	if !a.Matches(b) {
		t.Fatal("expected moves within epsilon to match")
	}

	c := &player.SavedMove{DeltaTime: 0.05, Impulse: mgl32.Vec2{1, 0}, Yaw: 90, Flags: 0}
	if a.Matches(c) {
		t.Fatal("expected differing flags not to match")
	}
}
