package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventAngularVelocityApplied = "angular_velocity_applied"

// AngularVelocityApplied is pushed each time a behavior writes a body's
// angular velocity.
type AngularVelocityApplied struct {
	Entity Entity
	Force  float64
	Tick   uint64
}

// EventQueue is a simple FIFO queue. The scheduler clears it at the end of
// every tick, so consumers must be systems ordered after the producers.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
