package physics

const (
	// DefaultVelocityDamping is the per-step velocity multiplier applied to
	// every point mass right after integration, before collision resolution.
	DefaultVelocityDamping = 0.999

	// DefaultPressureAreaFloor guards the pressure component's 1/V term
	// against a singularity when the polygon collapses.
	DefaultPressureAreaFloor = 0.5

	// DefaultGravityX and DefaultGravityY make up the World's default
	// acceleration vector.
	DefaultGravityX = 0.0
	DefaultGravityY = -9.8

	// DefaultPenetrationThreshold is the maximum penetration tolerated per
	// collision iteration before it's treated as a real contact.
	DefaultPenetrationThreshold = 0.3

	// DefaultPenetrationIterations is how many narrow-phase + resolution
	// passes World.Step runs per tick.
	DefaultPenetrationIterations = 1

	// DefaultBitmaskGridSize is the broad-phase grid's cell count per axis.
	DefaultBitmaskGridSize = 32

	// DefaultRestitution and DefaultFriction seed material slot 0.
	DefaultRestitution = 0.0
	DefaultFriction    = 0.0
)
