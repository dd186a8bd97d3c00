package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"tag":           addTag,
	"disabled":      addDisabled,
	"transform":     addTransform,
	"physics_body":  addPhysicsBody,
	"shape":         addShape,
	"paddle":        addPaddle,
	"paddle_input":  addPaddleInput,
	"paddle_script": addPaddleScript,
	"ball":          addBall,
	"relaunch":      addRelaunch,
	"goal":          addGoal,
	"score":         addScore,
	"score_changed": addScoreChanged,
	"score_text":    addScoreText,
	"match":         addMatch,
	"match_input":   addMatchInput,
}

// componentBuildOrder puts transform ahead of physics_body and paddle ahead
// of paddle_script so later builders can read what earlier ones added.
var componentBuildOrder = []string{
	"tag",
	"transform",
	"paddle",
	"paddle_input",
	"paddle_script",
	"ball",
	"relaunch",
	"goal",
	"score",
	"score_changed",
	"score_text",
	"match",
	"match_input",
	"physics_body",
	"shape",
	"disabled",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var unordered []string
	for name := range remaining {
		if !contains(componentBuildOrder, name) {
			unordered = append(unordered, name)
		}
	}
	sort.Strings(unordered)
	names = append(names, unordered...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TagComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tag spec: %w", err)
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: spec.Name})
}

func addDisabled(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DisabledComponent.Kind(), &component.Disabled{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind, err := parseBodyKind(spec.Kind)
	if err != nil {
		return err
	}
	layer, err := parseLayer(spec.Layer)
	if err != nil {
		return err
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	if kind == component.BodyDynamic && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       kind,
		Layer:      layer,
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Sensor:     spec.Sensor,
	})
}

func parseBodyKind(v string) (component.BodyKind, error) {
	switch strings.ToLower(v) {
	case "", "dynamic":
		return component.BodyDynamic, nil
	case "kinematic":
		return component.BodyKinematic, nil
	case "static":
		return component.BodyStatic, nil
	default:
		return 0, fmt.Errorf("unknown body kind %q", v)
	}
}

func parseLayer(v string) (component.CollisionLayer, error) {
	for _, l := range []component.CollisionLayer{component.LayerBall, component.LayerPaddle, component.LayerWall, component.LayerGoal} {
		if strings.EqualFold(v, l.String()) {
			return l, nil
		}
	}
	if v == "" {
		return component.LayerNone, nil
	}
	return 0, fmt.Errorf("unknown collision layer %q", v)
}

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	shape := &component.Shape{
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Color:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Layer:  spec.Layer,
	}
	switch strings.ToLower(spec.Kind) {
	case "", "rect":
		shape.Kind = component.ShapeRect
	case "circle":
		shape.Kind = component.ShapeCircle
	default:
		return fmt.Errorf("unknown shape kind %q", spec.Kind)
	}
	if spec.Color != "" {
		c, err := parseHexColor(spec.Color)
		if err != nil {
			return err
		}
		shape.Color = c
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), shape)
}

func addPaddle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PaddleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode paddle spec: %w", err)
	}
	side := component.ParseSide(spec.Side)
	if side == component.SideNone {
		return fmt.Errorf("paddle: unknown side %q", spec.Side)
	}
	if spec.Speed < 0 {
		return fmt.Errorf("paddle: negative speed %v", spec.Speed)
	}
	return ecs.Add(w, e, component.PaddleComponent.Kind(), &component.Paddle{
		Side:  side,
		Speed: spec.Speed,
		MinY:  orDefault(spec.MinY, component.DefaultPaddleMinY),
		MaxY:  orDefault(spec.MaxY, component.DefaultPaddleMaxY),
	})
}

func addPaddleInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PaddleInputComponent.Kind(), &component.PaddleInput{})
}

func addPaddleScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PaddleScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode paddle script spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("paddle script: script path is required")
	}
	return ecs.Add(w, e, component.PaddleScriptComponent.Kind(), &component.PaddleScript{
		Path:     spec.Script,
		DeadZone: spec.DeadZone,
	})
}

func addBall(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BallComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ball spec: %w", err)
	}
	ball, err := ballFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.BallComponent.Kind(), ball)
}

func ballFromSpec(spec prefabs.BallComponentSpec) (*component.Ball, error) {
	ball := &component.Ball{
		Force:       spec.Force,
		Delay:       spec.Delay,
		AngleMinDeg: orDefault(spec.AngleMinDeg, component.DefaultAngleMinDeg),
		AngleMaxDeg: orDefault(spec.AngleMaxDeg, component.DefaultAngleMaxDeg),
		SpawnMinY:   orDefault(spec.SpawnMinY, component.DefaultSpawnMinY),
		SpawnMaxY:   orDefault(spec.SpawnMaxY, component.DefaultSpawnMaxY),
	}
	if ball.Force < 0 || ball.Delay < 0 {
		return nil, fmt.Errorf("ball: force and delay must be non-negative, got %v and %v", ball.Force, ball.Delay)
	}
	if ball.AngleMinDeg > ball.AngleMaxDeg {
		return nil, fmt.Errorf("ball: angle range [%v, %v] is inverted", ball.AngleMinDeg, ball.AngleMaxDeg)
	}
	if ball.SpawnMinY > ball.SpawnMaxY {
		return nil, fmt.Errorf("ball: spawn range [%v, %v] is inverted", ball.SpawnMinY, ball.SpawnMaxY)
	}
	return ball, nil
}

func addRelaunch(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RelaunchComponent.Kind(), &component.Relaunch{})
}

func addGoal(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GoalComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode goal spec: %w", err)
	}
	side := component.ParseSide(spec.Side)
	if side == component.SideNone {
		return fmt.Errorf("goal: unknown side %q", spec.Side)
	}
	if spec.Tag == "" {
		return fmt.Errorf("goal: tag is required")
	}
	return ecs.Add(w, e, component.GoalComponent.Kind(), &component.Goal{Side: side, Tag: spec.Tag})
}

func addScore(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScoreComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode score spec: %w", err)
	}
	return ecs.Add(w, e, component.ScoreComponent.Kind(), &component.Score{P1: spec.P1, P2: spec.P2})
}

func addScoreChanged(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScoreChangedComponent.Kind(), &component.ScoreChanged{})
}

func addScoreText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScoreTextComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode score text spec: %w", err)
	}
	side := component.ParseSide(spec.Side)
	if side == component.SideNone {
		return fmt.Errorf("score text: unknown side %q", spec.Side)
	}
	return ecs.Add(w, e, component.ScoreTextComponent.Kind(), &component.ScoreText{Side: side, Size: spec.Size, Text: "0"})
}

func addMatch(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MatchComponent.Kind(), &component.Match{})
}

func addMatchInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MatchInputComponent.Kind(), &component.MatchInput{})
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func parseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
