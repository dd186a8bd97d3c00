package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/pong/common"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/stretchr/testify/require"
)

type arena struct {
	world  *ecs.World
	ball   ecs.Entity
	score  ecs.Entity
	match  ecs.Entity
	p1, p2 ecs.Entity
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, kind, v))
}

// newArena builds the match scene by hand: two paddles, a ball, two goal
// sensors, two walls, the scoreboard and the match entity. Systems are
// left to the caller.
func newArena(t *testing.T, ballDisabled bool) *arena {
	t.Helper()
	w := ecs.NewWorld()
	a := &arena{world: w}

	paddle := func(side component.Side, x float64) ecs.Entity {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.PaddleComponent.Kind(), &component.Paddle{
			Side:  side,
			Speed: 6,
			MinY:  component.DefaultPaddleMinY,
			MaxY:  component.DefaultPaddleMaxY,
		})
		mustAdd(t, w, e, component.PaddleInputComponent.Kind(), &component.PaddleInput{})
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x})
		mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:       component.BodyKinematic,
			Layer:      component.LayerPaddle,
			Width:      0.3,
			Height:     1.6,
			Elasticity: 1,
		})
		return e
	}
	a.p1 = paddle(component.Side1, -8.5)
	a.p2 = paddle(component.Side2, 8.5)

	a.ball = ecs.CreateEntity(w)
	mustAdd(t, w, a.ball, component.BallComponent.Kind(), &component.Ball{
		Force:       10,
		Delay:       0.5,
		AngleMinDeg: component.DefaultAngleMinDeg,
		AngleMaxDeg: component.DefaultAngleMaxDeg,
		SpawnMinY:   component.DefaultSpawnMinY,
		SpawnMaxY:   component.DefaultSpawnMaxY,
	})
	mustAdd(t, w, a.ball, component.RelaunchComponent.Kind(), &component.Relaunch{})
	mustAdd(t, w, a.ball, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, a.ball, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyDynamic,
		Layer:      component.LayerBall,
		Radius:     0.2,
		Mass:       1,
		Elasticity: 1,
	})
	mustAdd(t, w, a.ball, component.TagComponent.Kind(), &component.Tag{Name: "ball"})
	if ballDisabled {
		mustAdd(t, w, a.ball, component.DisabledComponent.Kind(), &component.Disabled{})
	}

	goal := func(side component.Side, tag string, x float64) {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.GoalComponent.Kind(), &component.Goal{Side: side, Tag: tag})
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x})
		mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:   component.BodyStatic,
			Layer:  component.LayerGoal,
			Width:  1,
			Height: 2 * common.ArenaHalfHeight,
			Sensor: true,
		})
	}
	goal(component.Side1, common.GoalTagP1, -common.ArenaHalfWidth-0.5)
	goal(component.Side2, common.GoalTagP2, common.ArenaHalfWidth+0.5)

	wall := func(name string, y float64) {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.TagComponent.Kind(), &component.Tag{Name: name})
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Y: y})
		mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:       component.BodyStatic,
			Layer:      component.LayerWall,
			Width:      2 * common.ArenaHalfWidth,
			Height:     0.5,
			Elasticity: 1,
		})
	}
	wall("wall_top", common.ArenaHalfHeight+0.25)
	wall("wall_bottom", -common.ArenaHalfHeight-0.25)

	a.score = ecs.CreateEntity(w)
	mustAdd(t, w, a.score, component.ScoreComponent.Kind(), &component.Score{})
	for _, side := range []component.Side{component.Side1, component.Side2} {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.ScoreTextComponent.Kind(), &component.ScoreText{Side: side})
	}

	a.match = ecs.CreateEntity(w)
	mustAdd(t, w, a.match, component.MatchComponent.Kind(), &component.Match{ID: "test"})
	mustAdd(t, w, a.match, component.MatchInputComponent.Kind(), &component.MatchInput{})
	return a
}

func (a *arena) scoreValue(t *testing.T) component.Score {
	t.Helper()
	s, ok := ecs.Get(a.world, a.score, component.ScoreComponent.Kind())
	require.True(t, ok)
	return *s
}

func (a *arena) relaunch(t *testing.T) *component.Relaunch {
	t.Helper()
	r, ok := ecs.Get(a.world, a.ball, component.RelaunchComponent.Kind())
	require.True(t, ok)
	return r
}

func (a *arena) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(a.world, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

// funcSystem adapts a closure to ecs.System.
type funcSystem func(w *ecs.World)

func (f funcSystem) Update(w *ecs.World) { f(w) }
