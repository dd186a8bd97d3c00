package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/sirupsen/logrus"
)

// maxSubStep bounds a single solver step so a fast ball cannot tunnel
// through a paddle on a slow frame.
const maxSubStep = 1.0 / 120.0

const solverIterations = 20

// PhysicsSystem owns the Chipmunk space. It mirrors enabled entities with
// physics bodies into the space, steps it by the frame delta, writes
// dynamic body positions back to transforms and turns contacts into world
// events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	stepEvents    []ecs.Event
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	kind   component.BodyKind
	layer  component.CollisionLayer
	tag    string
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:         newSpace(),
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	if MatchPaused(w) {
		return
	}
	ps.syncKinematic(w)

	dt := w.Clock().Delta
	if dt > 0 {
		steps := int(math.Ceil(dt / maxSubStep))
		sub := dt / float64(steps)
		for i := 0; i < steps; i++ {
			ps.space.Step(sub)
		}
	}

	for _, evt := range ps.stepEvents {
		w.Events().Push(evt)
	}
	ps.stepEvents = ps.stepEvents[:0]

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	ballType := cp.CollisionType(component.LayerBall)

	goalHandler := ps.space.NewCollisionHandler(ballType, cp.CollisionType(component.LayerGoal))
	goalHandler.UserData = ps
	goalHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		ball, region, ok := sys.resolvePair(arb, component.LayerBall)
		if !ok {
			return true
		}
		sys.stepEvents = append(sys.stepEvents, ecs.Event{
			Type: ecs.EventTrigger,
			Data: ecs.TriggerEvent{Entity: ball, Region: region, RegionTag: sys.tagOf(region)},
		})
		return true
	}

	contact := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		ball, other, ok := sys.resolvePair(arb, component.LayerBall)
		if !ok {
			return true
		}
		sys.stepEvents = append(sys.stepEvents, ecs.Event{
			Type: ecs.EventCollision,
			Data: ecs.CollisionEvent{Entity: ball, Other: other, OtherTag: sys.tagOf(other)},
		})
		return true
	}

	for _, layer := range []component.CollisionLayer{component.LayerPaddle, component.LayerWall} {
		h := ps.space.NewCollisionHandler(ballType, cp.CollisionType(layer))
		h.UserData = ps
		h.BeginFunc = contact
	}

	ps.handlersReady = true
}

// resolvePair returns the entity on the given layer first.
func (ps *PhysicsSystem) resolvePair(arb *cp.Arbiter, first component.CollisionLayer) (ecs.Entity, ecs.Entity, bool) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapeToEntity[shapeA]
	b, okB := ps.shapeToEntity[shapeB]
	if !okA || !okB {
		return 0, 0, false
	}
	if info := ps.entities[a]; info != nil && info.layer == first {
		return a, b, true
	}
	return b, a, true
}

func (ps *PhysicsSystem) tagOf(e ecs.Entity) string {
	if info := ps.entities[e]; info != nil {
		return info.tag
	}
	return ""
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			return
		}

		info := ps.createBodyInfo(*t, *bodyComp)
		if info == nil {
			return
		}
		info.tag = entityTag(w, e)
		ps.entities[e] = info
		ps.shapeToEntity[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape

		logrus.WithFields(logrus.Fields{
			"entity": e.String(),
			"layer":  info.layer.String(),
			"tag":    info.tag,
		}).Debug("physics: body created")
	})
}

func entityTag(w *ecs.World, e ecs.Entity) string {
	if goal, ok := ecs.Get(w, e, component.GoalComponent.Kind()); ok && goal.Tag != "" {
		return goal.Tag
	}
	if tag, ok := ecs.Get(w, e, component.TagComponent.Kind()); ok {
		return tag.Name
	}
	return ""
}

func (ps *PhysicsSystem) createBodyInfo(t component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 1, 1
	}

	info := &bodyInfo{kind: bodyComp.Kind, layer: bodyComp.Layer}

	var body *cp.Body
	switch bodyComp.Kind {
	case component.BodyStatic:
		body = ps.space.StaticBody
		info.static = true
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
	}

	var shape *cp.Shape
	if info.static {
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{X: t.X, Y: t.Y})
		} else {
			bb := cp.BB{L: t.X - width/2, B: t.Y - height/2, R: t.X + width/2, T: t.Y + height/2}
			shape = cp.NewBox2(body, bb, 0)
		}
	} else {
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.SetAngle(t.Rotation)
		body.SetAngularVelocity(0)
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		ps.space.AddBody(body)
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(cp.CollisionType(bodyComp.Layer))
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

// syncKinematic moves kinematic bodies to their transforms before stepping.
func (ps *PhysicsSystem) syncKinematic(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind != component.BodyKinematic {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		info.body.SetVelocityVector(cp.Vector{})
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind != component.BodyDynamic {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	}
}

// cleanupEntities drops bodies whose entity died, lost its body component
// or was disabled.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) && !ecs.Has(w, e, component.DisabledComponent.Kind()) {
			continue
		}

		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapeToEntity, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			bodyComp.Body = nil
			bodyComp.Shape = nil
		}
		delete(ps.entities, e)
	}
}
