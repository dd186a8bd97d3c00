package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventCollision carries a CollisionEvent.
	EventCollision = "collision"
	// EventTrigger carries a TriggerEvent.
	EventTrigger = "trigger"
)

// CollisionEvent is raised when an entity starts touching a solid body.
type CollisionEvent struct {
	Entity   Entity
	Other    Entity
	OtherTag string
}

// TriggerEvent is raised when an entity enters a sensor region.
type TriggerEvent struct {
	Entity    Entity
	Region    Entity
	RegionTag string
}

// EventQueue is a FIFO of events raised during the current frame. Readers
// iterate without consuming so several systems can observe the same event;
// the world clears the queue once every system has run.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Of returns the queued events of the given type in arrival order.
func (q *EventQueue) Of(eventType string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// Triggers returns the trigger events raised this frame.
func Triggers(w *World) []TriggerEvent {
	var out []TriggerEvent
	for _, evt := range w.Events().Of(EventTrigger) {
		if t, ok := evt.Data.(TriggerEvent); ok {
			out = append(out, t)
		}
	}
	return out
}

// Collisions returns the collision events raised this frame.
func Collisions(w *World) []CollisionEvent {
	var out []CollisionEvent
	for _, evt := range w.Events().Of(EventCollision) {
		if c, ok := evt.Data.(CollisionEvent); ok {
			out = append(out, c)
		}
	}
	return out
}
