package system

import (
	"errors"
	"testing"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingScript = `
move := 0
if ball_y > paddle_y + dead_zone {
	move = 1
} else if ball_y < paddle_y - dead_zone {
	move = -1
}
`

func scriptedArena(t *testing.T, src string) (*arena, *PaddleScriptSystem, *int) {
	t.Helper()
	a := newArena(t, false)
	loads := 0
	s := NewPaddleScriptSystem()
	s.Load = func(path string) ([]byte, error) {
		loads++
		if path != "track.tengo" {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}
	for _, e := range []ecs.Entity{a.p1, a.p2} {
		mustAdd(t, a.world, e, component.PaddleScriptComponent.Kind(), &component.PaddleScript{Path: "track.tengo", DeadZone: 0.5})
	}
	a.world.AddSystem(s)
	return a, s, &loads
}

func TestPaddleScriptTracksBall(t *testing.T) {
	cases := []struct {
		name  string
		ballY float64
		want  component.PaddleInput
	}{
		{"above", 3, component.PaddleInput{Up: true}},
		{"below", -2, component.PaddleInput{Down: true}},
		{"inside_dead_zone", 0.3, component.PaddleInput{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, _, loads := scriptedArena(t, trackingScript)
			a.transform(t, a.ball).Y = c.ballY

			a.world.Update(0.016)

			for _, e := range []ecs.Entity{a.p1, a.p2} {
				in, _ := ecs.Get(a.world, e, component.PaddleInputComponent.Kind())
				assert.Equal(t, c.want, *in)
			}
			assert.Equal(t, 1, *loads, "compiled once per path")
		})
	}
}

func TestPaddleScriptFollowsBallAcrossFrames(t *testing.T) {
	a, _, _ := scriptedArena(t, trackingScript)
	a.world.AddSystem(NewPaddleSystem())
	a.transform(t, a.ball).Y = 2

	for i := 0; i < 60; i++ {
		a.world.Update(1.0 / 60.0)
	}
	assert.InDelta(t, 2, a.transform(t, a.p1).Y, 0.5+0.1)
}

func TestPaddleScriptResetPicksUpNewSource(t *testing.T) {
	a := newArena(t, false)
	src := "move := 1"
	loads := 0
	s := NewPaddleScriptSystem()
	s.Load = func(string) ([]byte, error) {
		loads++
		return []byte(src), nil
	}
	mustAdd(t, a.world, a.p1, component.PaddleScriptComponent.Kind(), &component.PaddleScript{Path: "edit.tengo"})
	a.world.AddSystem(s)

	input := func() component.PaddleInput {
		in, _ := ecs.Get(a.world, a.p1, component.PaddleInputComponent.Kind())
		return *in
	}

	a.world.Update(0.016)
	assert.Equal(t, component.PaddleInput{Up: true}, input())

	src = "move := -1"
	a.world.Update(0.016)
	assert.Equal(t, component.PaddleInput{Up: true}, input(), "compiled script is cached")
	assert.Equal(t, 1, loads)

	s.Reset()
	a.world.Update(0.016)
	assert.Equal(t, component.PaddleInput{Down: true}, input())
	assert.Equal(t, 2, loads)
}

func TestPaddleScriptFailures(t *testing.T) {
	t.Run("missing_script", func(t *testing.T) {
		a, _, _ := scriptedArena(t, trackingScript)
		sc, _ := ecs.Get(a.world, a.p1, component.PaddleScriptComponent.Kind())
		sc.Path = "missing.tengo"
		in, _ := ecs.Get(a.world, a.p1, component.PaddleInputComponent.Kind())
		in.Up = true

		a.world.Update(0.016)
		assert.Equal(t, component.PaddleInput{}, *in)
	})

	t.Run("no_move_variable", func(t *testing.T) {
		a, _, _ := scriptedArena(t, `x := ball_y`)
		in, _ := ecs.Get(a.world, a.p1, component.PaddleInputComponent.Kind())
		in.Down = true

		require.NotPanics(t, func() { a.world.Update(0.016) })
		assert.Equal(t, component.PaddleInput{}, *in)
	})

	t.Run("paused", func(t *testing.T) {
		a, _, loads := scriptedArena(t, trackingScript)
		match, _ := ecs.Get(a.world, a.match, component.MatchComponent.Kind())
		match.Paused = true

		a.world.Update(0.016)
		assert.Zero(t, *loads)
	})
}
