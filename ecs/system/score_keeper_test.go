package system

import (
	"testing"

	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardPoint(t *testing.T) {
	a := newArena(t, true)

	s, err := AwardPoint(a.world, component.Side1)
	require.NoError(t, err)
	assert.Equal(t, component.Score{P1: 1}, s)
	assert.True(t, ecs.Has(a.world, a.score, component.ScoreChangedComponent.Kind()))

	_, err = AwardPoint(a.world, component.SideNone)
	assert.Error(t, err)
	assert.Equal(t, component.Score{P1: 1}, a.scoreValue(t))
}

func TestAwardPointOrderDoesNotMatter(t *testing.T) {
	sequences := [][]component.Side{
		{component.Side1, component.Side1, component.Side2},
		{component.Side2, component.Side1, component.Side1},
		{component.Side1, component.Side2, component.Side1},
	}
	for _, seq := range sequences {
		a := newArena(t, true)
		for _, side := range seq {
			_, err := AwardPoint(a.world, side)
			require.NoError(t, err)
		}
		assert.Equal(t, component.Score{P1: 2, P2: 1}, a.scoreValue(t))
	}
}

func TestAwardPointWithoutScoreboard(t *testing.T) {
	w := ecs.NewWorld()
	_, err := AwardPoint(w, component.Side1)
	assert.ErrorIs(t, err, ErrNoScoreKeeper)
}

func TestScoreKeeperStartIsOneShot(t *testing.T) {
	a := newArena(t, true)
	w := a.world
	keys := NewKeyState()
	w.AddSystem(NewInputSystem(keys))
	w.AddSystem(NewScoreKeeperSystem(func() { t.Fatal("unexpected quit") }))

	w.Update(0.016)
	keys.EndFrame()
	assert.False(t, MatchRunning(w))
	assert.True(t, ecs.Has(w, a.ball, component.DisabledComponent.Kind()))

	keys.Tap(component.KeySpace)
	w.Update(0.016)
	keys.EndFrame()
	match, _ := ecs.Get(w, a.match, component.MatchComponent.Kind())
	require.True(t, match.Running)
	assert.Equal(t, uint64(2), match.StartedFrame)
	assert.False(t, ecs.Has(w, a.ball, component.DisabledComponent.Kind()))

	// A second start press and a re-disabled ball: nothing is reactivated.
	require.NoError(t, ecs.Add(w, a.ball, component.DisabledComponent.Kind(), &component.Disabled{}))
	keys.Tap(component.KeySpace)
	w.Update(0.016)
	keys.EndFrame()
	assert.Equal(t, uint64(2), match.StartedFrame)
	assert.True(t, ecs.Has(w, a.ball, component.DisabledComponent.Kind()))
}

func TestScoreKeeperPause(t *testing.T) {
	a := newArena(t, true)
	w := a.world
	keys := NewKeyState()
	w.AddSystem(NewInputSystem(keys))
	w.AddSystem(NewScoreKeeperSystem(func() {}))

	tap := func(k component.Key) {
		keys.Tap(k)
		w.Update(0.016)
		keys.EndFrame()
	}

	tap(component.KeyP)
	assert.False(t, MatchPaused(w), "pause before start is ignored")

	tap(component.KeySpace)
	tap(component.KeyP)
	assert.True(t, MatchPaused(w))
	tap(component.KeyP)
	assert.False(t, MatchPaused(w))
}

func TestScoreKeeperQuit(t *testing.T) {
	t.Run("calls_hook", func(t *testing.T) {
		a := newArena(t, true)
		quits := 0
		keys := NewKeyState()
		a.world.AddSystem(NewInputSystem(keys))
		a.world.AddSystem(NewScoreKeeperSystem(func() { quits++ }))

		keys.Tap(component.KeyEscape)
		a.world.Update(0.016)
		assert.Equal(t, 1, quits)
	})

	t.Run("quit_beats_start", func(t *testing.T) {
		a := newArena(t, true)
		quits := 0
		keys := NewKeyState()
		a.world.AddSystem(NewInputSystem(keys))
		a.world.AddSystem(NewScoreKeeperSystem(func() { quits++ }))

		keys.Tap(component.KeyEscape)
		keys.Tap(component.KeySpace)
		a.world.Update(0.016)
		assert.Equal(t, 1, quits)
		assert.False(t, MatchRunning(a.world))
	})

	t.Run("missing_hook_panics", func(t *testing.T) {
		a := newArena(t, true)
		in, _ := ecs.Get(a.world, a.match, component.MatchInputComponent.Kind())
		in.Quit = true
		a.world.AddSystem(NewScoreKeeperSystem(nil))
		assert.Panics(t, func() { a.world.Update(0.016) })
	})
}
