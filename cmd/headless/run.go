package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/ecs/entity"
	"github.com/milk9111/pong/ecs/system"
)

const frameDelta = 1.0 / 60.0

type runResult struct {
	Seed     uint64
	MatchID  string
	Frames   int
	Score    component.Score
	Launches int
	Contacts int
}

// runSettings are the per-run knobs. The right paddle gets its own dead
// zone so one side can play sloppier than the other and goals happen.
type runSettings struct {
	Seconds    float64
	DeadZone   float64
	P2DeadZone float64
}

// runMatch plays one match with both paddles on the CPU script and
// returns the final bookkeeping.
func runMatch(seed uint64, cfg runSettings) (runResult, error) {
	w := ecs.NewWorld()
	m, err := entity.BuildMatch(w, entity.MatchOptions{
		Scripted:  []component.Side{component.Side1, component.Side2},
		DeadZone:  cfg.DeadZone,
		DeadZones: map[component.Side]float64{component.Side2: cfg.P2DeadZone},
	})
	if err != nil {
		return runResult{}, err
	}

	keys := system.NewKeyState()
	quit := false
	system.NewPipeline(keys, rand.New(rand.NewPCG(seed, seed^0x5eed)), func() { quit = true }).Install(w)

	res := runResult{Seed: seed, MatchID: m.ID}
	w.AddSystem(contactCounter{n: &res.Contacts})

	keys.Tap(component.KeySpace)
	frames := int(cfg.Seconds / frameDelta)
	for res.Frames < frames && !quit {
		w.Update(frameDelta)
		keys.EndFrame()
		res.Frames++
	}

	score, ok := ecs.Get(w, m.Scoreboard, component.ScoreComponent.Kind())
	if !ok {
		return res, fmt.Errorf("match %s: scoreboard vanished", m.ID)
	}
	res.Score = *score
	if l, ok := ecs.Get(w, m.Ball, component.LaunchComponent.Kind()); ok {
		res.Launches = l.Count
	}
	return res, nil
}

// contactCounter tallies ball contacts; it runs last so it sees the whole
// frame's events.
type contactCounter struct {
	n *int
}

func (c contactCounter) Update(w *ecs.World) {
	*c.n += len(ecs.Collisions(w))
}
