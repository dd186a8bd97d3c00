package system

import (
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
)

// PaddleSystem moves paddles from their held-key input.
type PaddleSystem struct{}

func NewPaddleSystem() *PaddleSystem {
	return &PaddleSystem{}
}

func (s *PaddleSystem) Update(w *ecs.World) {
	if w == nil || MatchPaused(w) {
		return
	}
	dt := w.Clock().Delta

	ecs.ForEach3(w, component.PaddleComponent.Kind(), component.PaddleInputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, paddle *component.Paddle, input *component.PaddleInput, t *component.Transform) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}
		t.Y = MovePaddle(t.Y, *paddle, *input, dt)
	})
}

// MovePaddle applies one frame of movement. The band check uses the
// position before the move, so a paddle may end a frame up to speed*dt past
// MinY or MaxY; from there it can only move back.
func MovePaddle(y float64, paddle component.Paddle, input component.PaddleInput, dt float64) float64 {
	if dt <= 0 {
		return y
	}
	step := paddle.Speed * dt
	if input.Up && y < paddle.MaxY {
		y += step
	}
	if input.Down && y > paddle.MinY {
		y -= step
	}
	return y
}
