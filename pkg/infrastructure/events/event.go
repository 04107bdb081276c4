package events

import (
	"time"
)

// Event is one entry of a run's planning audit trail. The stream id is the
// id of the purchase order the decision concerns.
type Event interface {
	Type() string
	StreamID() string
	Data() any
	Timestamp() time.Time
	Version() int
}

// EventHandler observes events as they are appended
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore records planning decisions for a single run
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

// PlanningEventTypes lists every event type the passes emit, in pass order
var PlanningEventTypes = []string{
	MaterialAllocatedEvent,
	MaterialShortageEvent,
	QualityHoldAppliedEvent,
	ProductionScheduledEvent,
	ProductionUnscheduledEvent,
}

// PlanningEvent is the stored form of an event. Version is its 1-based
// position within the stream.
type PlanningEvent struct {
	EventType    string    `json:"type"`
	Stream       string    `json:"stream"`
	Payload      any       `json:"data"`
	RecordedAt   time.Time `json:"time"`
	EventVersion int       `json:"version"`
}

func (e PlanningEvent) Type() string         { return e.EventType }
func (e PlanningEvent) StreamID() string     { return e.Stream }
func (e PlanningEvent) Data() any            { return e.Payload }
func (e PlanningEvent) Timestamp() time.Time { return e.RecordedAt }
func (e PlanningEvent) Version() int         { return e.EventVersion }

// NewEvent builds an unversioned event; the store assigns the version
func NewEvent(eventType, streamID string, payload any) Event {
	return PlanningEvent{
		EventType:  eventType,
		Stream:     streamID,
		Payload:    payload,
		RecordedAt: time.Now().UTC(),
	}
}
