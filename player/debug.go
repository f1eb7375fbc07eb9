package player

import "github.com/sirupsen/logrus"

const (
	DebugModeMovementSim uint8 = iota
	DebugModeReconcile
	DebugModeLatency
)

// Debugger gates per-subsystem debug output of the player.
type Debugger struct {
	log   *logrus.Logger
	modes uint64
}

// Toggle enables or disables debug output for the given mode.
func (d *Debugger) Toggle(mode uint8, enabled bool) {
	if enabled {
		d.modes |= 1 << mode
	} else {
		d.modes &^= 1 << mode
	}
}

// Enabled returns true if debug output for the given mode is enabled.
func (d *Debugger) Enabled(mode uint8) bool {
	return d.modes&(1<<mode) != 0
}

// Notify logs the given message when the mode is enabled and the condition
// holds.
func (d *Debugger) Notify(mode uint8, cond bool, format string, args ...interface{}) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.Debugf(format, args...)
}
