package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics system simulates a body.
type BodyKind int

const (
	// BodyDynamic bodies are moved by the solver.
	BodyDynamic BodyKind = iota
	// BodyKinematic bodies follow their Transform and push dynamic bodies.
	BodyKinematic
	// BodyStatic bodies never move.
	BodyStatic
)

// CollisionLayer classifies shapes for collision handlers.
type CollisionLayer int

const (
	LayerNone CollisionLayer = iota
	LayerBall
	LayerPaddle
	LayerWall
	LayerGoal
)

func (l CollisionLayer) String() string {
	switch l {
	case LayerBall:
		return "ball"
	case LayerPaddle:
		return "paddle"
	case LayerWall:
		return "wall"
	case LayerGoal:
		return "goal"
	default:
		return "none"
	}
}

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system the first frame the
// entity is enabled.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Kind       BodyKind
	Layer      CollisionLayer
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Sensor     bool
}

// Ready reports whether the physics system has created the body.
func (p *PhysicsBody) Ready() bool {
	return p != nil && p.Body != nil && p.Shape != nil
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
