package component

// Side identifies a player, its paddle and the boundary it defends.
type Side int

const (
	SideNone Side = iota
	Side1
	Side2
)

func (s Side) String() string {
	switch s {
	case Side1:
		return "p1"
	case Side2:
		return "p2"
	default:
		return "none"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case Side1:
		return Side2
	case Side2:
		return Side1
	default:
		return SideNone
	}
}

// Direction is the horizontal sign pointing from the arena centre toward
// this side's boundary: -1 for Side1 on the left, +1 for Side2 on the right.
func (s Side) Direction() int {
	switch s {
	case Side1:
		return -1
	case Side2:
		return 1
	default:
		return 0
	}
}

// ParseSide maps prefab names ("p1", "p2", "1", "2") to a Side.
func ParseSide(name string) Side {
	switch name {
	case "p1", "1", "side1":
		return Side1
	case "p2", "2", "side2":
		return Side2
	default:
		return SideNone
	}
}

// Bindings are the movement keys of one side.
type Bindings struct {
	Up   Key
	Down Key
}

// SideBindings is fixed at startup; sides never swap keys at runtime.
var SideBindings = map[Side]Bindings{
	Side1: {Up: KeyW, Down: KeyS},
	Side2: {Up: KeyArrowUp, Down: KeyArrowDown},
}
