package system

import (
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
)

// InputSystem copies host key state into paddle and match input components.
type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.keys == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.PaddleComponent.Kind(), component.PaddleInputComponent.Kind(), func(e ecs.Entity, paddle *component.Paddle, input *component.PaddleInput) {
		if ecs.Has(w, e, component.PaddleScriptComponent.Kind()) {
			return
		}
		b, ok := component.SideBindings[paddle.Side]
		if !ok {
			*input = component.PaddleInput{}
			return
		}
		input.Up = i.keys.Held(b.Up)
		input.Down = i.keys.Held(b.Down)
	})

	ecs.ForEach(w, component.MatchInputComponent.Kind(), func(e ecs.Entity, input *component.MatchInput) {
		input.Start = i.keys.JustPressed(component.MatchKeys.Start)
		input.Quit = i.keys.JustPressed(component.MatchKeys.Quit)
		input.Pause = i.keys.JustPressed(component.MatchKeys.Pause)
	})
}
