package ecs

import (
	"testing"

	"github.com/milk9111/pong/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)

			if c.destroyIndex >= 0 {
				require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "second destroy is a no-op")
				assert.Len(t, Entities(w), c.create-1)
			}
		})
	}
}

func TestRecycledSlotInvalidatesStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	require.NoError(t, Add(w, old, h.Kind(), intPtr(1)))
	require.True(t, DestroyEntity(w, old))

	fresh := CreateEntity(w)
	assert.Equal(t, old.id(), fresh.id(), "slot is reused")
	assert.NotEqual(t, old, fresh)
	assert.False(t, IsAlive(w, old))
	assert.False(t, Has(w, fresh, h.Kind()), "components do not survive destroy")

	err := Add(w, old, h.Kind(), intPtr(2))
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
}

func TestAddRejectsNilAndInvalidKind(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	assert.ErrorIs(t, Add[int](w, e, component.NewComponentKind[int](), nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind)
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				require.True(t, ok)
				assert.Equal(t, 10, *v)
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				assert.True(t, Has(w, e1, h2.Kind()))
				assert.True(t, Has(w, e2, h2.Kind()))
				assert.ElementsMatch(t, []Entity{e1, e2}, w.Query(h2.Kind()))
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "add_float_and_mutate_in_place",
			setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h3.Kind())
				require.True(t, ok)
				*v = 4.56
				again, _ := Get(w, e1, h3.Kind())
				assert.InDelta(t, 4.56, *again, 1e-12)
			},
			teardown: func() bool { return Remove(w, e1, h3.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			assert.True(t, tc.teardown(), "teardown failed for %s", tc.name)
		})
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	require.NoError(t, Add(w, e1, h.Kind(), intPtr(1)))
	require.NoError(t, Add(w, e3, h.Kind(), intPtr(3)))

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)

	assert.Contains(t, set, e1)
	assert.Contains(t, set, e3)
	assert.NotContains(t, set, e2)
}

func TestForEachAllowsRemovalDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		require.NoError(t, Add(w, e, h.Kind(), intPtr(i)))
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, _ *int) {
		visited++
		Remove(w, e, h.Kind())
	})
	assert.Equal(t, 4, visited)
	assert.Empty(t, w.Query(h.Kind()))
}

func TestForEachN(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection_of_three",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				require.NoError(t, Add(w, e1, ka, intPtr(1)))
				require.NoError(t, Add(w, e2, ka, intPtr(2)))
				require.NoError(t, Add(w, e2, kb, intPtr(3)))
				require.NoError(t, Add(w, e2, kc, intPtr(5)))
				require.NoError(t, Add(w, e3, kb, intPtr(4)))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				assert.Equal(t, []Entity{e2}, res)
			},
		},
		{
			name: "intersection_of_four",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				kd := component.NewComponentKind[string]()

				for _, e := range []Entity{e1, e2} {
					require.NoError(t, Add(w, e, ka, intPtr(1)))
					require.NoError(t, Add(w, e, kb, intPtr(2)))
					require.NoError(t, Add(w, e, kc, intPtr(3)))
				}
				require.NoError(t, Add(w, e2, kd, stringPtr("x")))

				var res []Entity
				ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, s *string) {
					assert.Equal(t, "x", *s)
					res = append(res, e)
				})
				assert.Equal(t, []Entity{e2}, res)
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				require.NoError(t, Add(w, e, ka, intPtr(1)))
				require.NoError(t, Add(w, e, kb, intPtr(2)))
				require.True(t, DestroyEntity(w, e))

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				assert.Empty(t, res)
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				require.NoError(t, Add(w, e, ka, intPtr(1)))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				assert.Empty(t, res)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type recordingSystem struct {
	name   string
	log    *[]string
	deltas *[]float64
}

func (r recordingSystem) Update(w *World) {
	*r.log = append(*r.log, r.name)
	if r.deltas != nil {
		*r.deltas = append(*r.deltas, w.Clock().Delta)
	}
}

func TestUpdateRunsSystemsInOrderAndClampsDelta(t *testing.T) {
	w := NewWorld()
	var log []string
	var deltas []float64
	w.AddSystem(recordingSystem{name: "a", log: &log, deltas: &deltas})
	w.AddSystem(nil)
	w.AddSystem(recordingSystem{name: "b", log: &log})

	w.Update(0.016)
	w.Update(3)
	w.Update(-1)

	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, log)
	assert.Equal(t, []float64{0.016, MaxFrameDelta, 0}, deltas)
	assert.Equal(t, uint64(3), w.Clock().Frame)
	assert.InDelta(t, 0.016+MaxFrameDelta, w.Clock().Elapsed, 1e-12)
	assert.Len(t, w.Systems(), 2)
}

type pushSystem struct{}

func (pushSystem) Update(w *World) {
	w.Events().Push(Event{Type: EventTrigger, Data: TriggerEvent{RegionTag: "goal"}})
	w.Events().Push(Event{Type: EventCollision, Data: CollisionEvent{OtherTag: "wall"}})
}

type peekSystem struct{ seen *[]string }

func (p peekSystem) Update(w *World) {
	for _, trig := range Triggers(w) {
		*p.seen = append(*p.seen, trig.RegionTag)
	}
	for _, c := range Collisions(w) {
		*p.seen = append(*p.seen, c.OtherTag)
	}
}

func TestEventsVisibleToLaterSystemsThenFlushed(t *testing.T) {
	w := NewWorld()
	var first, second []string
	w.AddSystem(pushSystem{})
	w.AddSystem(peekSystem{seen: &first})
	w.AddSystem(peekSystem{seen: &second})

	w.Update(0.016)

	assert.Equal(t, []string{"goal", "wall"}, first)
	assert.Equal(t, first, second, "reading does not consume")
	assert.Zero(t, w.Events().Len())
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: "a"})
	q.Push(Event{Type: "b"})

	assert.Len(t, q.Of("a"), 1)
	got := q.Drain()
	assert.Len(t, got, 2)
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Drain())
}

func TestFirstValue(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()

	_, _, ok := FirstValue(w, h.Kind())
	assert.False(t, ok)

	CreateEntity(w)
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, h.Kind(), stringPtr("score")))

	got, v, ok := FirstValue(w, h.Kind())
	require.True(t, ok)
	assert.Equal(t, e, got)
	assert.Equal(t, "score", *v)
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
