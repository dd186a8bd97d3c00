package component

const (
	DefaultPaddleMinY = -4.2
	DefaultPaddleMaxY = 4.2
)

// Paddle is a player-controlled bat that only moves vertically.
type Paddle struct {
	Side  Side
	Speed float64
	MinY  float64
	MaxY  float64
}

var PaddleComponent = NewComponent[Paddle]()

// PaddleScript hands a paddle to a tengo script instead of the keyboard.
type PaddleScript struct {
	Path     string
	DeadZone float64
}

var PaddleScriptComponent = NewComponent[PaddleScript]()
