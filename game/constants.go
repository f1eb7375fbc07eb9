package game

const (
	// TickRate is the fixed simulation rate shared by the predicting client
	// and the authoritative server.
	TickRate      = 20
	StandardDelta = float32(1.0 / float64(TickRate))

	// Units are centimeters and seconds.
	Gravity      = float32(980.0)
	JumpVelocity = float32(420.0)
	GroundLevel  = float32(0.0)

	// BrakingFrictionFactor scales the friction used while braking. Applied
	// on top of whichever friction the active movement mode resolved.
	BrakingFrictionFactor = float32(2.0)

	// BrakeToStopVelocity is the horizontal speed below which braking clamps
	// velocity straight to zero instead of decaying it further.
	BrakeToStopVelocity = float32(10.0)

	// BrakingSubstepTime bounds the integration step used while braking so
	// large deltas do not overshoot past zero.
	BrakingSubstepTime = float32(1.0 / 33.0)

	MinTickTime     = float32(1e-6)
	VelocityEpsilon = float32(1e-6)
	InputEpsilon    = float32(1e-4)

	DefaultStanceWidth  = float32(68.0)
	DefaultStanceHeight = float32(176.0)
)
