package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/prefabs"
	"github.com/sirupsen/logrus"
)

// paddleScriptVars are the globals a paddle script reads. The script writes
// `move` as -1, 0 or 1.
var paddleScriptVars = []string{
	"paddle_x", "paddle_y", "paddle_min_y", "paddle_max_y",
	"ball_x", "ball_y", "ball_vx", "ball_vy",
	"facing", "dead_zone",
}

// PaddleScriptSystem drives scripted paddles by running their tengo script
// once per frame. It must run after InputSystem and before PaddleSystem.
type PaddleScriptSystem struct {
	// Load returns a script's source. Defaults to the embedded prefab scripts.
	Load func(path string) ([]byte, error)

	compiled map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*tengo.Compiled
}

func NewPaddleScriptSystem() *PaddleScriptSystem {
	return &PaddleScriptSystem{
		Load:     prefabs.LoadScript,
		compiled: make(map[string]*tengo.Compiled),
		runtimes: make(map[ecs.Entity]*tengo.Compiled),
	}
}

// Reset drops every compiled script so the next frame reloads them from
// source. Hosts call it when a script file changes on disk.
func (s *PaddleScriptSystem) Reset() {
	clear(s.compiled)
	clear(s.runtimes)
}

func (s *PaddleScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || MatchPaused(w) {
		return
	}
	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ballX, ballY, ballVX, ballVY := trackedBall(w)

	ecs.ForEach4(w, component.PaddleComponent.Kind(), component.PaddleScriptComponent.Kind(), component.PaddleInputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, paddle *component.Paddle, script *component.PaddleScript, input *component.PaddleInput, t *component.Transform) {
		rt, err := s.runtime(e, script.Path)
		if err != nil {
			logrus.WithError(err).WithField("script", script.Path).Error("paddle script unavailable")
			*input = component.PaddleInput{}
			return
		}

		vars := map[string]any{
			"paddle_x":     t.X,
			"paddle_y":     t.Y,
			"paddle_min_y": paddle.MinY,
			"paddle_max_y": paddle.MaxY,
			"ball_x":       ballX,
			"ball_y":       ballY,
			"ball_vx":      ballVX,
			"ball_vy":      ballVY,
			"facing":       float64(-paddle.Side.Direction()),
			"dead_zone":    script.DeadZone,
		}
		for name, v := range vars {
			if err := rt.Set(name, v); err != nil {
				logrus.WithError(err).WithField("var", name).Error("paddle script set")
				return
			}
		}
		if err := rt.Run(); err != nil {
			logrus.WithError(err).WithField("script", script.Path).Error("paddle script run")
			*input = component.PaddleInput{}
			return
		}

		if !rt.IsDefined("move") {
			logrus.WithField("script", script.Path).Error("paddle script does not set move")
			*input = component.PaddleInput{}
			return
		}
		move := rt.Get("move").Int()
		input.Up = move > 0
		input.Down = move < 0
	})
}

func (s *PaddleScriptSystem) runtime(e ecs.Entity, path string) (*tengo.Compiled, error) {
	if rt, ok := s.runtimes[e]; ok {
		return rt, nil
	}
	base, ok := s.compiled[path]
	if !ok {
		src, err := s.Load(path)
		if err != nil {
			return nil, fmt.Errorf("paddle script %q: load: %w", path, err)
		}
		script := tengo.NewScript(src)
		for _, name := range paddleScriptVars {
			if err := script.Add(name, 0.0); err != nil {
				return nil, fmt.Errorf("paddle script %q: declare %s: %w", path, name, err)
			}
		}
		script.SetImports(stdlib.GetModuleMap("math"))
		base, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("paddle script %q: compile: %w", path, err)
		}
		s.compiled[path] = base
	}
	rt := base.Clone()
	s.runtimes[e] = rt
	return rt, nil
}

// trackedBall returns the position and velocity of the first enabled ball.
func trackedBall(w *ecs.World) (x, y, vx, vy float64) {
	for _, e := range w.Query(component.BallComponent.Kind(), component.TransformComponent.Kind()) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		x, y = t.X, t.Y
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Ready() {
			v := body.Body.Velocity()
			vx, vy = v.X, v.Y
		}
		return x, y, vx, vy
	}
	return 0, 0, 0, 0
}
