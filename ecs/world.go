package ecs

import "github.com/milk9111/pong/ecs/component"

// MaxFrameDelta caps a single frame step in seconds so a stalled host does
// not teleport bodies through the arena.
const MaxFrameDelta = 0.25

// FrameClock is the host frame clock as seen by systems.
type FrameClock struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// World owns entities, component stores and the per-frame event queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue
	clock     FrameClock
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the systems in update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update advances the clock by delta seconds, runs every system once and
// then drops the events raised during the frame.
func (w *World) Update(delta float64) {
	if w == nil {
		return
	}
	w.tick(delta)
	w.scheduler.Update(w)
	w.events.flush()
}

func (w *World) tick(delta float64) {
	if delta < 0 {
		delta = 0
	}
	if delta > MaxFrameDelta {
		delta = MaxFrameDelta
	}
	w.clock.Delta = delta
	w.clock.Elapsed += delta
	w.clock.Frame++
}

// Clock returns the clock for the frame being updated.
func (w *World) Clock() FrameClock {
	if w == nil {
		return FrameClock{}
	}
	return w.clock
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// DestroyEntity removes an entity and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// Query returns the live entities that have every listed component kind.
func (w *World) Query(kinds ...component.Kinder) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, id := range sets[smallest].ids() {
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.lookup(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity carrying the kind.
func (w *World) First(kind component.Kinder) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.stores[kind.ID()]
	for _, id := range s.ids() {
		if e, ok := w.entities.lookup(id); ok {
			return e, true
		}
	}
	return 0, false
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
