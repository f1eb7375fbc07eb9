package player

// Handler receives game-logic callbacks from the movement mode controller.
// Callbacks fire exactly once per confirmed transition edge and never during
// replay ticks of a correction.
type Handler interface {
	// OnStrafeStart is called when the strafing mode becomes active.
	OnStrafeStart()
	// OnStrafeEnd is called when the strafing mode is deactivated.
	OnStrafeEnd()
	// OnCorrection is called after an authoritative snapshot diverged from
	// the prediction and the buffered moves were resimulated.
	OnCorrection(frame uint64)
}

// NopHandler implements Handler with no-op methods. Embed it to only handle
// the callbacks of interest.
type NopHandler struct{}

func (NopHandler) OnStrafeStart()      {}
func (NopHandler) OnStrafeEnd()        {}
func (NopHandler) OnCorrection(uint64) {}
