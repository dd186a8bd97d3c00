package system

import (
	"strconv"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
)

// ScoreDisplaySystem rewrites the score text sinks when the score entity is
// flagged as changed.
type ScoreDisplaySystem struct{}

func NewScoreDisplaySystem() *ScoreDisplaySystem { return &ScoreDisplaySystem{} }

func (s *ScoreDisplaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, score, ok := ecs.FirstValue(w, component.ScoreComponent.Kind())
	if !ok || !ecs.Has(w, e, component.ScoreChangedComponent.Kind()) {
		return
	}

	ecs.ForEach(w, component.ScoreTextComponent.Kind(), func(_ ecs.Entity, text *component.ScoreText) {
		text.Text = strconv.Itoa(score.Of(text.Side))
	})
	ecs.Remove(w, e, component.ScoreChangedComponent.Kind())
}
