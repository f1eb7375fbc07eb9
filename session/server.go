package session

import (
	"sync"

	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/player/component"
	"github.com/predmove/predmove/player/movement"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/transport"
	"github.com/predmove/predmove/utils"
	"github.com/predmove/predmove/wire"
	"github.com/sirupsen/logrus"
)

// Server runs the authoritative side: it simulates received moves in frame
// order with the exact same controller and solver the client predicted with,
// and streams snapshots of the resulting state back on a fixed cadence.
type Server struct {
	log  *logrus.Logger
	conf settings.Settings
	tr   transport.Transport

	p *player.Player

	incoming chan wire.Move
	// backlog holds moves drained from the pump but not yet simulated,
	// bounded so a flooding client cannot grow it without limit.
	backlog *utils.CircularQueue[wire.Move]

	lastFrame uint64

	closeOnce sync.Once
	done      chan struct{}
}

// NewServer creates an authoritative session over the given transport.
func NewServer(log *logrus.Logger, conf settings.Settings, tr transport.Transport) (*Server, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	initSentry(conf.Sentry.DSN)

	p := player.New(log, true)
	component.Register(p, conf, mode.NewRegistry())

	return &Server{
		log:  log,
		conf: conf,
		tr:   tr,

		p: p,

		incoming: make(chan wire.Move, conf.Prediction.MoveBacklog),
		backlog:  utils.NewCircularQueue[wire.Move](conf.Prediction.MoveBacklog),
		done:     make(chan struct{}),
	}, nil
}

// Player returns the authoritative player instance of the session.
func (s *Server) Player() *player.Player {
	return s.p
}

// Start launches the transport read pump.
func (s *Server) Start() {
	go s.readPump()
}

// Tick drains the received moves and simulates them in order, snapshotting
// every configured interval of frames.
func (s *Server) Tick() error {
	for {
		select {
		case mv := <-s.incoming:
			if old, dropped := s.backlog.Append(mv); dropped {
				s.log.Warnf("move backlog full, dropped frame %d", old.Frame)
			}
			continue
		default:
		}
		break
	}

	for {
		mv, ok := s.backlog.Pop()
		if !ok {
			return nil
		}
		if err := s.processMove(mv); err != nil {
			return err
		}
	}
}

// Close shuts the session down and closes its transport.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.tr.Close()
		s.p.Close()
	})
}

func (s *Server) processMove(mv wire.Move) error {
	if s.lastFrame != 0 && mv.Frame <= s.lastFrame {
		s.p.Dbg.Notify(player.DebugModeReconcile, true, "ignored out-of-order move for frame %d", mv.Frame)
		return nil
	}

	s.p.SimulationFrame = mv.Frame
	mov := s.p.Movement()
	mov.UpdateFromFlags(mv.Flags)
	mov.SetImpulse(mv.Impulse)
	mov.SetYaw(mv.Yaw)

	mov.UpdateStateBeforeMovement(mv.DeltaTime)
	movement.Simulate(s.p, mv.DeltaTime)
	mov.UpdateStateAfterMovement(mv.DeltaTime)

	s.lastFrame = mv.Frame
	if mv.Frame%uint64(s.conf.Prediction.SnapshotInterval) == 0 {
		return s.sendSnapshot()
	}
	return nil
}

func (s *Server) sendSnapshot() error {
	mov := s.p.Movement()
	return s.tr.WriteFrame(wire.Snapshot{
		Frame:    s.lastFrame,
		Pos:      mov.Pos(),
		Vel:      mov.Vel(),
		Flags:    mov.EffectiveFlags(),
		OnGround: mov.OnGround(),
	}.Encode())
}

func (s *Server) readPump() {
	defer capturePanic(s.log, "server read pump")

	for {
		dat, err := s.tr.ReadFrame()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.log.Debugf("server read pump stopped: %v", err)
			}
			return
		}

		f, err := wire.Decode(dat)
		if err != nil {
			s.log.Warnf("dropping bad frame: %v", err)
			continue
		}
		mv, ok := f.(wire.Move)
		if !ok {
			s.log.Warnf("dropping unexpected %T frame on server", f)
			continue
		}

		select {
		case s.incoming <- mv:
		case <-s.done:
			return
		}
	}
}
