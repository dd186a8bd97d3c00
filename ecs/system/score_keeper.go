package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/sirupsen/logrus"
)

// ErrNoScoreKeeper means no entity carries the score counters, usually a
// scene built without the scoreboard prefab.
var ErrNoScoreKeeper = errors.New("score keeper: no score entity")

// ScoreKeeperSystem owns the match state: it quits on the quit key, starts
// the match once on the start key and toggles pause while running.
type ScoreKeeperSystem struct {
	// Quit ends the host process. Hosts must set it.
	Quit func()
}

func NewScoreKeeperSystem(quit func()) *ScoreKeeperSystem {
	return &ScoreKeeperSystem{Quit: quit}
}

func (s *ScoreKeeperSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	e, match, ok := ecs.FirstValue(w, component.MatchComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, e, component.MatchInputComponent.Kind())
	if !ok {
		return
	}

	if input.Quit {
		logrus.WithField("match", match.ID).Info("quit requested")
		if s.Quit == nil {
			panic("score keeper: quit requested but no quit hook is wired")
		}
		s.Quit()
		return
	}

	if input.Start && !match.Running {
		match.Running = true
		match.StartedFrame = w.Clock().Frame
		activated := activateBalls(w)
		logrus.WithFields(logrus.Fields{
			"match": match.ID,
			"balls": activated,
		}).Info("match started")
	}

	if input.Pause && match.Running {
		match.Paused = !match.Paused
		logrus.WithFields(logrus.Fields{
			"match":  match.ID,
			"paused": match.Paused,
		}).Debug("pause toggled")
	}
}

func activateBalls(w *ecs.World) int {
	n := 0
	for _, e := range w.Query(component.BallComponent.Kind(), component.DisabledComponent.Kind()) {
		if ecs.Remove(w, e, component.DisabledComponent.Kind()) {
			n++
		}
	}
	return n
}

// AwardPoint credits side with one point and flags the score as changed.
func AwardPoint(w *ecs.World, side component.Side) (component.Score, error) {
	e, score, ok := ecs.FirstValue(w, component.ScoreComponent.Kind())
	if !ok {
		return component.Score{}, ErrNoScoreKeeper
	}
	if !score.AddPoint(side) {
		return *score, fmt.Errorf("score keeper: award point to %s: unknown side", side)
	}
	if err := ecs.Add(w, e, component.ScoreChangedComponent.Kind(), &component.ScoreChanged{}); err != nil {
		return *score, fmt.Errorf("score keeper: mark score changed: %w", err)
	}
	return *score, nil
}

// MatchRunning reports whether the start key has been pressed.
func MatchRunning(w *ecs.World) bool {
	_, match, ok := ecs.FirstValue(w, component.MatchComponent.Kind())
	return ok && match.Running
}

// MatchPaused reports whether gameplay is frozen.
func MatchPaused(w *ecs.World) bool {
	_, match, ok := ecs.FirstValue(w, component.MatchComponent.Kind())
	return ok && match.Paused
}

func matchID(w *ecs.World) string {
	_, match, ok := ecs.FirstValue(w, component.MatchComponent.Kind())
	if !ok {
		return ""
	}
	return match.ID
}
