// Package settings contains the configuration surface of the prediction
// library: movement parameters per mode, the prediction window, and ambient
// options. Settings are read-only once a session has been constructed.
package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/predmove/predmove/mode"
)

// Settings contains everything that can be configured for a session pair.
type Settings struct {
	Movement   Movement
	Strafe     Strafe
	Prediction Prediction
	Sentry     Sentry
}

// Movement holds the parameters of the base walking state.
type Movement struct {
	MaxAcceleration     float32
	MaxSpeed            float32
	BrakingDeceleration float32
	GroundFriction      float32
	BrakingFriction     float32

	// UseSeparateBrakingFriction selects BrakingFriction instead of
	// GroundFriction while braking.
	UseSeparateBrakingFriction bool
}

// Params returns the walking parameters as a mode parameter set.
func (m Movement) Params() mode.Params {
	return mode.Params{
		MaxAcceleration:     m.MaxAcceleration,
		MaxSpeed:            m.MaxSpeed,
		BrakingDeceleration: m.BrakingDeceleration,
		GroundFriction:      m.GroundFriction,
		BrakingFriction:     m.BrakingFriction,
	}
}

// Strafe holds the parameters substituted while the strafing mode is active.
type Strafe struct {
	MaxAcceleration     float32
	MaxSpeed            float32
	BrakingDeceleration float32
	GroundFriction      float32
	BrakingFriction     float32

	// ExitRetryTicks is the number of simulation ticks between retries of a
	// deferred strafe exit whose stance fit check failed. 1 retries every
	// tick. There is no timeout after which the exit is forced.
	ExitRetryTicks int
}

// Params returns the strafing parameters as a mode parameter set.
func (s Strafe) Params() mode.Params {
	return mode.Params{
		MaxAcceleration:     s.MaxAcceleration,
		MaxSpeed:            s.MaxSpeed,
		BrakingDeceleration: s.BrakingDeceleration,
		GroundFriction:      s.GroundFriction,
		BrakingFriction:     s.BrakingFriction,
	}
}

// Prediction bounds the client's speculation window.
type Prediction struct {
	// MaxPendingMoves caps the buffered moves awaiting acknowledgment. The
	// oldest move is dropped once the cap is exceeded.
	MaxPendingMoves int
	// PositionThreshold is the distance within which a predicted position is
	// considered to agree with the authoritative one.
	PositionThreshold float32
	// SnapshotInterval is the number of server frames between authoritative
	// snapshots.
	SnapshotInterval int
	// MoveBacklog caps the server's queue of incoming moves not yet
	// simulated.
	MoveBacklog int
}

// Sentry configures panic capture of the session pumps. Disabled when the DSN
// is empty.
type Sentry struct {
	DSN string
}

// Default returns the default settings.
func Default() Settings {
	walk, strafe := mode.DefaultWalk(), mode.DefaultStrafe()
	return Settings{
		Movement: Movement{
			MaxAcceleration:     walk.MaxAcceleration,
			MaxSpeed:            walk.MaxSpeed,
			BrakingDeceleration: walk.BrakingDeceleration,
			GroundFriction:      walk.GroundFriction,
			BrakingFriction:     walk.BrakingFriction,
		},
		Strafe: Strafe{
			MaxAcceleration:     strafe.MaxAcceleration,
			MaxSpeed:            strafe.MaxSpeed,
			BrakingDeceleration: strafe.BrakingDeceleration,
			GroundFriction:      strafe.GroundFriction,
			BrakingFriction:     strafe.BrakingFriction,
			ExitRetryTicks:      1,
		},
		Prediction: Prediction{
			MaxPendingMoves:   100,
			PositionThreshold: 1.0,
			SnapshotInterval:  5,
			MoveBacklog:       128,
		},
	}
}

// Validate checks the non-negativity constraints of every parameter.
func (s Settings) Validate() error {
	if err := s.Movement.Params().Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}
	if err := s.Strafe.Params().Validate(); err != nil {
		return fmt.Errorf("strafe: %w", err)
	}
	if s.Strafe.ExitRetryTicks < 1 {
		return fmt.Errorf("strafe: ExitRetryTicks must be at least 1, got %d", s.Strafe.ExitRetryTicks)
	}
	if s.Prediction.MaxPendingMoves < 1 {
		return fmt.Errorf("prediction: MaxPendingMoves must be at least 1, got %d", s.Prediction.MaxPendingMoves)
	}
	if s.Prediction.PositionThreshold < 0 {
		return fmt.Errorf("prediction: PositionThreshold must be non-negative, got %v", s.Prediction.PositionThreshold)
	}
	if s.Prediction.SnapshotInterval < 1 {
		return fmt.Errorf("prediction: SnapshotInterval must be at least 1, got %d", s.Prediction.SnapshotInterval)
	}
	if s.Prediction.MoveBacklog < 1 {
		return fmt.Errorf("prediction: MoveBacklog must be at least 1, got %d", s.Prediction.MoveBacklog)
	}
	return nil
}

// ReadOrCreate reads the settings from the given toml file, or creates the
// file with defaults if it does not yet exist.
func ReadOrCreate(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(s)
		if err != nil {
			return s, fmt.Errorf("encode default settings: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return s, fmt.Errorf("create default settings: %w", err)
		}
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, s.Validate()
}
