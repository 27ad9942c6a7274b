package ecs

// EventKind identifies gameplay event types.
type EventKind string

const (
	EventPlayerHit    EventKind = "player_hit"
	EventTileBroken   EventKind = "tile_broken"
	EventGoalReached  EventKind = "goal_reached"
	EventEnemyState   EventKind = "enemy_state"
	EventPlayerBounce EventKind = "player_bounce"
)

// Event is a gameplay notification raised by one system for later systems in
// the same tick.
type Event struct {
	Kind   EventKind
	Entity Entity
	Other  Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
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
