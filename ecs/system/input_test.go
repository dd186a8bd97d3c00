package system

import (
	"testing"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestKeyState(t *testing.T) {
	k := NewKeyState()

	k.Press(component.KeyW)
	assert.True(t, k.Held(component.KeyW))
	assert.True(t, k.JustPressed(component.KeyW))

	k.EndFrame()
	assert.True(t, k.Held(component.KeyW))
	assert.False(t, k.JustPressed(component.KeyW))

	k.Press(component.KeyW)
	assert.False(t, k.JustPressed(component.KeyW), "holding is not a new press")

	k.Release(component.KeyW)
	assert.False(t, k.Held(component.KeyW))

	k.Tap(component.KeySpace)
	assert.True(t, k.JustPressed(component.KeySpace))
	k.EndFrame()
	assert.False(t, k.Held(component.KeySpace))
}

func TestInputSystemBindings(t *testing.T) {
	cases := []struct {
		name   string
		held   []component.Key
		p1, p2 component.PaddleInput
	}{
		{"none", nil, component.PaddleInput{}, component.PaddleInput{}},
		{"w_moves_p1_only", []component.Key{component.KeyW}, component.PaddleInput{Up: true}, component.PaddleInput{}},
		{"arrows_move_p2_only", []component.Key{component.KeyArrowUp, component.KeyArrowDown}, component.PaddleInput{}, component.PaddleInput{Up: true, Down: true}},
		{"both_players", []component.Key{component.KeyS, component.KeyArrowUp}, component.PaddleInput{Down: true}, component.PaddleInput{Up: true}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newArena(t, true)
			keys := NewKeyState()
			for _, k := range c.held {
				keys.Press(k)
			}
			a.world.AddSystem(NewInputSystem(keys))
			a.world.Update(0.016)

			in1, _ := ecs.Get(a.world, a.p1, component.PaddleInputComponent.Kind())
			in2, _ := ecs.Get(a.world, a.p2, component.PaddleInputComponent.Kind())
			assert.Equal(t, c.p1, *in1)
			assert.Equal(t, c.p2, *in2)
		})
	}
}

func TestInputSystemMatchKeysAreEdges(t *testing.T) {
	a := newArena(t, true)
	keys := NewKeyState()
	a.world.AddSystem(NewInputSystem(keys))
	in, _ := ecs.Get(a.world, a.match, component.MatchInputComponent.Kind())

	keys.Press(component.KeySpace)
	a.world.Update(0.016)
	assert.True(t, in.Start)
	keys.EndFrame()

	a.world.Update(0.016)
	assert.False(t, in.Start, "held start key only fires once")
}

func TestInputSystemSkipsScriptedPaddles(t *testing.T) {
	a := newArena(t, true)
	keys := NewKeyState()
	keys.Press(component.KeyArrowUp)
	a.world.AddSystem(NewInputSystem(keys))
	mustAdd(t, a.world, a.p2, component.PaddleScriptComponent.Kind(), &component.PaddleScript{Path: "scripts/paddle_ai.tengo"})
	in2, _ := ecs.Get(a.world, a.p2, component.PaddleInputComponent.Kind())
	in2.Down = true

	a.world.Update(0.016)
	assert.Equal(t, component.PaddleInput{Down: true}, *in2)
}
