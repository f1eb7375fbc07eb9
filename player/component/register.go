package component

import (
	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/settings"
)

// Register registers the components for the given player.
func Register(p *player.Player, s settings.Settings, reg *mode.Registry) {
	p.SetMovement(NewPredictedMovementComponent(p, s, reg))
	p.SetPrediction(NewPredictionComponent(p, s.Prediction.MaxPendingMoves))
	p.SetReconciliation(NewReconciliationComponent(p, s))
}
