package entity

import (
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/prefabs"
	"github.com/sirupsen/logrus"
)

// DefaultPaddleScript drives CPU paddles.
const DefaultPaddleScript = "scripts/paddle_ai.tengo"

// MatchPrefabs are built in this order by BuildMatch.
var MatchPrefabs = []string{
	"wall_top.yaml",
	"wall_bottom.yaml",
	"goal_p1.yaml",
	"goal_p2.yaml",
	"paddle_p1.yaml",
	"paddle_p2.yaml",
	"ball.yaml",
	"scoreboard.yaml",
	"score_text_p1.yaml",
	"score_text_p2.yaml",
}

type MatchOptions struct {
	// Scripted sides are driven by Script instead of the keyboard.
	Scripted []component.Side
	Script   string
	DeadZone float64
	// DeadZones overrides DeadZone per scripted side.
	DeadZones map[component.Side]float64
	// ID overrides the generated match id.
	ID string
}

// Match holds the handles of the entities BuildMatch created.
type Match struct {
	ID         string
	Scoreboard ecs.Entity
	Ball       ecs.Entity
	Paddles    map[component.Side]ecs.Entity
	Goals      map[component.Side]ecs.Entity
	Entities   []ecs.Entity
}

// BuildMatch assembles the arena from prefabs. The ball starts disabled and
// the score starts flagged as changed so the display shows 0 - 0.
func BuildMatch(w *ecs.World, opts MatchOptions) (*Match, error) {
	m := &Match{
		ID:      opts.ID,
		Paddles: make(map[component.Side]ecs.Entity, 2),
		Goals:   make(map[component.Side]ecs.Entity, 2),
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	built := false
	defer func() {
		if built {
			return
		}
		for _, e := range m.Entities {
			ecs.DestroyEntity(w, e)
		}
	}()

	for _, name := range MatchPrefabs {
		e, err := BuildEntity(w, name)
		if err != nil {
			return nil, fmt.Errorf("build match: %w", err)
		}
		m.Entities = append(m.Entities, e)

		if paddle, ok := ecs.Get(w, e, component.PaddleComponent.Kind()); ok {
			m.Paddles[paddle.Side] = e
		}
		if goal, ok := ecs.Get(w, e, component.GoalComponent.Kind()); ok {
			m.Goals[goal.Side] = e
		}
		if ecs.Has(w, e, component.BallComponent.Kind()) {
			m.Ball = e
		}
		if match, ok := ecs.Get(w, e, component.MatchComponent.Kind()); ok {
			match.ID = m.ID
			m.Scoreboard = e
		}
	}

	if err := m.validate(w); err != nil {
		return nil, fmt.Errorf("build match: %w", err)
	}

	script := opts.Script
	if script == "" {
		script = DefaultPaddleScript
	}
	for _, side := range opts.Scripted {
		e, ok := m.Paddles[side]
		if !ok {
			return nil, fmt.Errorf("build match: no paddle for scripted side %s", side)
		}
		deadZone := opts.DeadZone
		if dz, ok := opts.DeadZones[side]; ok {
			deadZone = dz
		}
		if err := ecs.Add(w, e, component.PaddleScriptComponent.Kind(), &component.PaddleScript{
			Path:     script,
			DeadZone: deadZone,
		}); err != nil {
			return nil, fmt.Errorf("build match: script %s: %w", side, err)
		}
	}

	built = true
	logrus.WithFields(logrus.Fields{
		"match":    m.ID,
		"entities": len(m.Entities),
		"scripted": len(opts.Scripted),
	}).Info("match built")
	return m, nil
}

func (m *Match) validate(w *ecs.World) error {
	for _, side := range []component.Side{component.Side1, component.Side2} {
		if _, ok := m.Paddles[side]; !ok {
			return fmt.Errorf("missing paddle for %s", side)
		}
		if _, ok := m.Goals[side]; !ok {
			return fmt.Errorf("missing goal for %s", side)
		}
	}
	if !m.Ball.Valid() {
		return fmt.Errorf("missing ball")
	}
	if !m.Scoreboard.Valid() || !ecs.Has(w, m.Scoreboard, component.ScoreComponent.Kind()) {
		return fmt.Errorf("missing scoreboard")
	}
	return nil
}

// ReloadTunables re-reads paddle and ball parameters from the changed
// prefab files and applies them in place. Positions, bodies and the score
// are left alone. Names that are not yaml prefabs are skipped, and a file
// that fails to load does not stop the rest of the batch. It reports how
// many components were updated and the joined per-file errors.
func ReloadTunables(w *ecs.World, changed []string) (int, error) {
	updated := 0
	var errs []error
	for _, name := range changed {
		if !isPrefabFile(name) {
			continue
		}
		n, err := reloadPrefab(w, name)
		updated += n
		if err != nil {
			errs = append(errs, fmt.Errorf("reload %s: %w", name, err))
		}
	}
	if updated > 0 {
		logrus.WithFields(logrus.Fields{
			"files":   changed,
			"updated": updated,
		}).Info("tunables reloaded")
	}
	return updated, errors.Join(errs...)
}

func isPrefabFile(name string) bool {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func reloadPrefab(w *ecs.World, name string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return 0, err
	}

	updated := 0
	if raw, ok := spec.Components["paddle"]; ok {
		ps, err := prefabs.DecodeComponentSpec[prefabs.PaddleComponentSpec](raw)
		if err != nil {
			return updated, fmt.Errorf("decode paddle: %w", err)
		}
		side := component.ParseSide(ps.Side)
		ecs.ForEach(w, component.PaddleComponent.Kind(), func(_ ecs.Entity, p *component.Paddle) {
			if p.Side != side {
				return
			}
			p.Speed = ps.Speed
			p.MinY = orDefault(ps.MinY, component.DefaultPaddleMinY)
			p.MaxY = orDefault(ps.MaxY, component.DefaultPaddleMaxY)
			updated++
		})
	}

	if raw, ok := spec.Components["ball"]; ok {
		bs, err := prefabs.DecodeComponentSpec[prefabs.BallComponentSpec](raw)
		if err != nil {
			return updated, fmt.Errorf("decode ball: %w", err)
		}
		next, err := ballFromSpec(bs)
		if err != nil {
			return updated, err
		}
		ecs.ForEach(w, component.BallComponent.Kind(), func(_ ecs.Entity, b *component.Ball) {
			*b = *next
			updated++
		})
	}
	return updated, nil
}
