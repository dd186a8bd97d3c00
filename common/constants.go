package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 60.0

	// Arena extents in world units. Walls sit on ArenaHalfHeight, goals sit
	// just past ArenaHalfWidth.
	ArenaHalfWidth  = 10.0
	ArenaHalfHeight = 5.0
)

// Region tags delivered with goal trigger events.
const (
	GoalTagP1 = "Porteria1"
	GoalTagP2 = "Porteria2"
)
