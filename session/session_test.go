package session

import (
	"io"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/transport"
	"github.com/sirupsen/logrus"
)

type countingHandler struct {
	player.NopHandler

	corrections int
}

func (h *countingHandler) OnCorrection(uint64) { h.corrections++ }

func newSessionPair(t *testing.T) (*Client, *Server) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	conf := settings.Default()

	clTr, srvTr := transport.Pipe(conf.Prediction.MoveBacklog)
	cl, err := NewClient(log, conf, clTr)
	if err != nil {
		t.Fatalf("client setup failed: %v", err)
	}
	srv, err := NewServer(log, conf, srvTr)
	if err != nil {
		t.Fatalf("server setup failed: %v", err)
	}

	cl.Start()
	srv.Start()
	t.Cleanup(func() {
		cl.Close()
		srv.Close()
	})
	return cl, srv
}

// runTicks advances the pair in lockstep, yielding between sides so the pipe
// pumps can deliver.
func runTicks(t *testing.T, cl *Client, srv *Server, in Input, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := cl.Tick(in, game.StandardDelta); err != nil {
			t.Fatalf("client tick failed: %v", err)
		}
		time.Sleep(time.Millisecond)
		if err := srv.Tick(); err != nil {
			t.Fatalf("server tick failed: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionPairStaysConverged(t *testing.T) {
	cl, srv := newSessionPair(t)
	h := &countingHandler{}
	cl.Player().Handle(h)

	runTicks(t, cl, srv, Input{Impulse: mgl32.Vec2{1, 0}, Yaw: 30}, 100)

	// Both sides run the same deterministic solver on the same inputs, so the
	// snapshots must agree with the prediction and never force a correction.
	if h.corrections != 0 {
		t.Fatalf("expected no corrections on identical simulations, got %d", h.corrections)
	}

	// Acknowledgments must have trimmed the prediction window well below the
	// number of simulated frames.
	if pending := cl.Player().Prediction().Pending(); pending >= 100 {
		t.Fatalf("expected acknowledged moves to be released, got %d pending", pending)
	}

	if pos := srv.Player().Movement().Pos(); game.Vec3HzDistSqr(pos) == 0 {
		t.Fatalf("expected the server to have moved, got %v", pos)
	}
}

func TestSessionPairRecoversFromForcedDivergence(t *testing.T) {
	cl, srv := newSessionPair(t)
	h := &countingHandler{}
	cl.Player().Handle(h)

	in := Input{Impulse: mgl32.Vec2{1, 0}}
	runTicks(t, cl, srv, in, 20)

	// Teleport the authoritative player out from under the prediction.
	srvMov := srv.Player().Movement()
	srvMov.SetPos(srvMov.Pos().Add(mgl32.Vec3{200, 0, 0}))

	runTicks(t, cl, srv, in, 40)

	if h.corrections == 0 {
		t.Fatal("expected at least one correction after the forced divergence")
	}

	// Once corrected, the client tracks the authoritative branch again: its
	// recent predictions agree with the snapshots and are acknowledged.
	corrected := h.corrections
	runTicks(t, cl, srv, in, 40)
	if h.corrections != corrected {
		t.Fatalf("expected no further corrections once realigned, got %d more", h.corrections-corrected)
	}
}

func TestSessionStrafeRoundTrip(t *testing.T) {
	cl, srv := newSessionPair(t)

	in := Input{Impulse: mgl32.Vec2{1, 0}}
	runTicks(t, cl, srv, in, 10)

	cl.Strafe()
	if !cl.Player().Movement().IsStrafing() {
		t.Fatal("expected immediate predicted activation")
	}

	runTicks(t, cl, srv, in, 10)
	if !srv.Player().Movement().IsStrafing() {
		t.Fatal("expected the server to confirm the strafe from the intent flags")
	}

	cl.UnStrafe()
	runTicks(t, cl, srv, in, 10)
	if cl.Player().Movement().IsStrafing() || srv.Player().Movement().IsStrafing() {
		t.Fatal("expected both sides to leave the strafe")
	}
}
