package mode

import "github.com/predmove/predmove/perror"

// Params is the static per-tick configuration a movement mode substitutes into
// the velocity solver while it is active. All values are read-only during
// simulation and must be non-negative.
type Params struct {
	// MaxAcceleration is the rate of change of velocity while input is held.
	MaxAcceleration float32
	// MaxSpeed is the maximum ground speed.
	MaxSpeed float32
	// BrakingDeceleration is a constant opposing force applied while braking.
	BrakingDeceleration float32
	// GroundFriction affects how quickly direction changes while moving on
	// ground, and braking strength when no separate braking friction is used.
	GroundFriction float32
	// BrakingFriction is the drag coefficient applied while braking. Only
	// consulted when the separate-braking-friction option is enabled.
	BrakingFriction float32
}

// Validate returns an error if any parameter is negative.
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value float32
	}{
		{"MaxAcceleration", p.MaxAcceleration},
		{"MaxSpeed", p.MaxSpeed},
		{"BrakingDeceleration", p.BrakingDeceleration},
		{"GroundFriction", p.GroundFriction},
		{"BrakingFriction", p.BrakingFriction},
	} {
		if v.value < 0 {
			return perror.New("mode: %s must be non-negative, got %v", v.name, v.value)
		}
	}
	return nil
}

// DefaultWalk returns the parameters of the base walking state.
func DefaultWalk() Params {
	return Params{
		MaxAcceleration:     2048,
		MaxSpeed:            600,
		BrakingDeceleration: 2048,
		GroundFriction:      8,
		BrakingFriction:     0,
	}
}

// DefaultStrafe returns the parameters substituted while strafing. Strafing
// trades top speed for tighter direction control.
func DefaultStrafe() Params {
	return Params{
		MaxAcceleration: 1024,
		MaxSpeed:        400,
		// A higher deceleration and friction make the strafing stance feel
		// planted when input is released.
		BrakingDeceleration: 2560,
		GroundFriction:      12,
		BrakingFriction:     4,
	}
}
