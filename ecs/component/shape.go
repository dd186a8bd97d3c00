package component

import "image/color"

// ShapeKind is the primitive a host draws for an entity.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape describes how to draw an entity, in world units.
type Shape struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	Color  color.NRGBA
	Layer  int
}

var ShapeComponent = NewComponent[Shape]()
