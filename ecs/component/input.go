package component

// Key is a host-neutral key name. Hosts translate their own key codes.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyArrowUp
	KeyArrowDown
	KeySpace
	KeyEscape
	KeyP
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyS:
		return "S"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeySpace:
		return "Space"
	case KeyEscape:
		return "Escape"
	case KeyP:
		return "P"
	default:
		return "Unknown"
	}
}

// PaddleInput is the held-key state for one paddle this frame.
type PaddleInput struct {
	Up   bool
	Down bool
}

var PaddleInputComponent = NewComponent[PaddleInput]()

// MatchInput holds the keys that went down this frame for match control.
type MatchInput struct {
	Start bool
	Quit  bool
	Pause bool
}

var MatchInputComponent = NewComponent[MatchInput]()

// MatchKeys binds the match control keys.
var MatchKeys = struct {
	Start Key
	Quit  Key
	Pause Key
}{
	Start: KeySpace,
	Quit:  KeyEscape,
	Pause: KeyP,
}
