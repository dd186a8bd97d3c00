package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is one prefab file: a name and its components keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes a generic yaml value into a typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type PhysicsBodyComponentSpec struct {
	Kind       string  `yaml:"kind"`
	Layer      string  `yaml:"layer"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Sensor     bool    `yaml:"sensor"`
}

type ShapeComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Layer  int     `yaml:"layer"`
}

type PaddleComponentSpec struct {
	Side  string   `yaml:"side"`
	Speed float64  `yaml:"speed"`
	MinY  *float64 `yaml:"min_y"`
	MaxY  *float64 `yaml:"max_y"`
}

type PaddleScriptComponentSpec struct {
	Script   string  `yaml:"script"`
	DeadZone float64 `yaml:"dead_zone"`
}

type BallComponentSpec struct {
	Force       float64  `yaml:"force"`
	Delay       float64  `yaml:"delay"`
	AngleMinDeg *float64 `yaml:"angle_min_deg"`
	AngleMaxDeg *float64 `yaml:"angle_max_deg"`
	SpawnMinY   *float64 `yaml:"spawn_min_y"`
	SpawnMaxY   *float64 `yaml:"spawn_max_y"`
}

type GoalComponentSpec struct {
	Side string `yaml:"side"`
	Tag  string `yaml:"tag"`
}

type TagComponentSpec struct {
	Name string `yaml:"name"`
}

type ScoreComponentSpec struct {
	P1 int `yaml:"p1"`
	P2 int `yaml:"p2"`
}

type ScoreTextComponentSpec struct {
	Side string  `yaml:"side"`
	Size float64 `yaml:"size"`
}
