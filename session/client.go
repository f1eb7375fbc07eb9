package session

import (
	"sync"

	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/player/component"
	"github.com/predmove/predmove/player/movement"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/transport"
	"github.com/predmove/predmove/wire"
	"github.com/sirupsen/logrus"
)

// Client runs the predicting side: it simulates ticks speculatively ahead of
// server confirmation, records them in the prediction window, and reconciles
// against authoritative snapshots pushed by the read pump.
type Client struct {
	log  *logrus.Logger
	conf settings.Settings
	tr   transport.Transport

	p *player.Player

	snapshots chan wire.Snapshot

	closeOnce sync.Once
	done      chan struct{}
}

// NewClient creates a predicting session over the given transport.
func NewClient(log *logrus.Logger, conf settings.Settings, tr transport.Transport) (*Client, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	initSentry(conf.Sentry.DSN)

	p := player.New(log, false)
	component.Register(p, conf, mode.NewRegistry())

	return &Client{
		log:  log,
		conf: conf,
		tr:   tr,

		p: p,

		snapshots: make(chan wire.Snapshot, conf.Prediction.MaxPendingMoves),
		done:      make(chan struct{}),
	}, nil
}

// Player returns the predicting player instance of the session.
func (c *Client) Player() *player.Player {
	return c.p
}

// Strafe requests the strafing mode for the local player.
func (c *Client) Strafe() {
	c.p.Movement().Strafe(false)
}

// UnStrafe cancels the strafing mode for the local player.
func (c *Client) UnStrafe() {
	c.p.Movement().UnStrafe(false)
}

// Start launches the transport read pump.
func (c *Client) Start() {
	go c.readPump()
}

// Tick runs one predicted simulation tick with the given input and sends the
// resulting move to the server. Pending authoritative snapshots are resolved
// first, so any resimulation completes before the live tick.
func (c *Client) Tick(in Input, deltaTime float32) error {
	for {
		select {
		case snap := <-c.snapshots:
			c.p.Reconciliation().ProcessSnapshot(snap)
			continue
		default:
		}
		break
	}

	c.p.SimulationFrame++
	mov := c.p.Movement()
	mov.SetImpulse(in.Impulse)
	mov.SetYaw(in.Yaw)
	mov.SetJumping(in.Jump)

	mov.UpdateStateBeforeMovement(deltaTime)
	movement.Simulate(c.p, deltaTime)
	mov.UpdateStateAfterMovement(deltaTime)

	m := c.p.Prediction().Capture(deltaTime)
	return c.tr.WriteFrame(wire.Move{
		Frame:     m.Frame,
		DeltaTime: m.DeltaTime,
		Impulse:   m.Impulse,
		Yaw:       m.Yaw,
		Flags:     m.Flags,
	}.Encode())
}

// Close shuts the session down and closes its transport.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.tr.Close()
		c.p.Close()
	})
}

func (c *Client) readPump() {
	defer capturePanic(c.log, "client read pump")

	for {
		dat, err := c.tr.ReadFrame()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Debugf("client read pump stopped: %v", err)
			}
			return
		}

		f, err := wire.Decode(dat)
		if err != nil {
			c.log.Warnf("dropping bad frame: %v", err)
			continue
		}
		snap, ok := f.(wire.Snapshot)
		if !ok {
			c.log.Warnf("dropping unexpected %T frame on client", f)
			continue
		}

		select {
		case c.snapshots <- snap:
		default:
			// The simulation has not consumed snapshots for a full window.
			// Dropping the oldest keeps the pump from blocking; a later
			// snapshot supersedes it anyway.
			select {
			case <-c.snapshots:
			default:
			}
			c.snapshots <- snap
		}
	}
}
