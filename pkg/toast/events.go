package toast

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies a lifecycle event.
type EventKind string

const (
	EventSubmitted  EventKind = "submitted" // every admitted request, before it is queued or presented
	EventQueued     EventKind = "queued"
	EventPresented  EventKind = "presented"
	EventDismissing EventKind = "dismissing"
	EventCompleted  EventKind = "completed"
	EventDiscarded  EventKind = "discarded"
)

// Event is emitted to observers on the scheduler timeline.
type Event struct {
	Kind     EventKind
	ID       uuid.UUID
	Priority Priority
	State    State
	Reason   Reason        // EventCompleted only
	Err      error         // EventCompleted only
	Elapsed  time.Duration // time since render start, EventCompleted only
	Pending  int           // queue length after the event
	At       time.Time
}

// Observer receives lifecycle events. It runs on the scheduler timeline
// and must not block.
type Observer func(Event)
