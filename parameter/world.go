package parameter

import "time"

// Arena & Population
const (
	// ArenaBounds is the side length of the square arena in world units
	ArenaBounds = 1028.0

	// BodyCount is the default population size
	BodyCount = 100

	// GravitationalConstant is scaled up for visible interaction at arena scale
	GravitationalConstant = 2.0

	// RespawnThreshold is the distance from arena center beyond which a body is respawned
	RespawnThreshold = 700.0
)

// Body Generation
const (
	GenLowerPosBound = 0.0
	GenUpperPosBound = ArenaBounds
	GenVelocityBound = 1.3
	GenMassMean      = 5.0
	GenMassStd       = 10.0
	GenMassToSize    = 0.2

	// MaxMassDraws bounds redraws of non-positive normal samples before generation fails
	MaxMassDraws = 64
)

// Timing
const (
	// FrameRate is the default interactive tick rate
	FrameRate = 60

	// MaxFrameRate bounds the configured rate so the frame interval stays positive
	MaxFrameRate = 1000

	// MaxFrameDelta caps dt after stalls (suspend, debugger) so a single tick stays stable
	MaxFrameDelta = 100 * time.Millisecond

	// HeadlessDelta is the fixed dt for headless runs, one frame at FrameRate
	HeadlessDelta = 1.0 / FrameRate
)

// Audio
const (
	// SoundCooldown is the minimum spacing between repeated cues of one kind
	SoundCooldown = 120 * time.Millisecond
)
