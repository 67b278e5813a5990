package models

import "time"

type EventType string

const (
	EventIncidentReported  EventType = "incident.reported"
	EventResourceAllocated EventType = "resource.allocated"
	EventInsightGenerated  EventType = "insight.generated"
	EventAlertGenerated    EventType = "alert.generated"
	EventStoreReset        EventType = "store.reset"
)

// Event is a change notification fanned out to stream subscribers and the
// optional external sink.
type Event struct {
	Type    EventType `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

func NewEvent(t EventType, payload any) *Event {
	return &Event{
		Type:    t,
		At:      time.Now().UTC(),
		Payload: payload,
	}
}
