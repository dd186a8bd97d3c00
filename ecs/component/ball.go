package component

const (
	DefaultAngleMinDeg = 30.0
	DefaultAngleMaxDeg = 50.0
	DefaultSpawnMinY   = -2.5
	DefaultSpawnMaxY   = 2.5
)

// Ball holds the launch parameters of the ball. Kinematics live in the
// physics body.
type Ball struct {
	Force       float64
	Delay       float64
	AngleMinDeg float64
	AngleMaxDeg float64
	SpawnMinY   float64
	SpawnMaxY   float64
}

var BallComponent = NewComponent[Ball]()

// Launch records the last relaunch for diagnostics and tests.
type Launch struct {
	Count    int
	SpawnY   float64
	AngleRad float64
	// Impulse is the unit direction before scaling by Ball.Force.
	ImpulseX float64
	ImpulseY float64
}

var LaunchComponent = NewComponent[Launch]()
