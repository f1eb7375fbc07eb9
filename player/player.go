package player

import (
	"github.com/sirupsen/logrus"
)

// Player is one simulated character instance. There is one predicting instance
// on the client and one authoritative instance on the server; each is owned
// and mutated exclusively by its side's simulation goroutine.
type Player struct {
	log *logrus.Logger
	Dbg *Debugger

	handler Handler

	movement       MovementComponent
	prediction     PredictionComponent
	reconciliation ReconciliationComponent
	fitChecker     FitChecker

	// SimulationFrame is the index of the tick currently being simulated.
	// Frames are strictly increasing on each side.
	SimulationFrame uint64

	// Authoritative is true on the server-side instance.
	Authoritative bool

	replaying bool
	closed    bool
}

// New creates a player. The authoritative flag marks the server-side instance.
func New(log *logrus.Logger, authoritative bool) *Player {
	p := &Player{
		log:           log,
		handler:       NopHandler{},
		Authoritative: authoritative,
	}
	p.Dbg = &Debugger{log: log}
	return p
}

// Log returns the logger of the player.
func (p *Player) Log() *logrus.Logger {
	return p.log
}

// Handle sets the handler that receives movement mode callbacks.
func (p *Player) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	p.handler = h
}

// Handler returns the current handler of the player.
func (p *Player) Handler() Handler {
	return p.handler
}

// Movement returns the movement component of the player.
func (p *Player) Movement() MovementComponent {
	return p.movement
}

// SetMovement sets the movement component of the player.
func (p *Player) SetMovement(mc MovementComponent) {
	p.movement = mc
}

// Prediction returns the prediction component of the player.
func (p *Player) Prediction() PredictionComponent {
	return p.prediction
}

// SetPrediction sets the prediction component of the player.
func (p *Player) SetPrediction(pc PredictionComponent) {
	p.prediction = pc
}

// Reconciliation returns the reconciliation component of the player.
func (p *Player) Reconciliation() ReconciliationComponent {
	return p.reconciliation
}

// SetReconciliation sets the reconciliation component of the player.
func (p *Player) SetReconciliation(rc ReconciliationComponent) {
	p.reconciliation = rc
}

// FitChecker returns the geometry collaborator consulted on mode exit, or nil
// if none was injected.
func (p *Player) FitChecker() FitChecker {
	return p.fitChecker
}

// SetFitChecker injects the geometry collaborator consulted when a mode exit
// needs the character to fit back into its default stance.
func (p *Player) SetFitChecker(fc FitChecker) {
	p.fitChecker = fc
}

// Replaying returns true while the player is resimulating buffered moves after
// a correction. Mode callbacks are suppressed during replay.
func (p *Player) Replaying() bool {
	return p.replaying
}

// SetReplaying marks the start or end of a correction replay.
func (p *Player) SetReplaying(replaying bool) {
	p.replaying = replaying
}

// Close marks the player as closed.
func (p *Player) Close() {
	p.closed = true
}

// Closed returns true if the player was closed.
func (p *Player) Closed() bool {
	return p.closed
}
