package component

// Transform is an entity position in world units. Y grows upward and the
// arena centre is the origin.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
