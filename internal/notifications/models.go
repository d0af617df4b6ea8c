package notifications

import (
	"encoding/json"
	"time"
)

// EventType identifies what happened to a reservation or seat.
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationActivated EventType = "reservation.activated"
	EventSeatBlocked          EventType = "seat.blocked"
	EventSeatUnblocked        EventType = "seat.unblocked"
)

// Event is the message published to the events topic for downstream
// consumers (mail, audit, dashboards). Identifiers travel as strings so
// consumers need no uuid dependency.
type Event struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id,omitempty"`
	SeatID        string    `json:"seat_id"`
	UserID        string    `json:"user_id"`
	StartTime     time.Time `json:"start_time,omitempty"`
	EndTime       time.Time `json:"end_time,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// GetPartitionKey routes all events for one seat to the same partition so
// per-seat ordering is preserved.
func (e *Event) GetPartitionKey() string {
	return e.SeatID
}

// ToJSON serializes the event for the wire
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NewReservationEvent builds a reservation lifecycle event
func NewReservationEvent(eventType EventType, reservationID, seatID, userID string, start, end time.Time) *Event {
	return &Event{
		Type:          eventType,
		ReservationID: reservationID,
		SeatID:        seatID,
		UserID:        userID,
		StartTime:     start,
		EndTime:       end,
		OccurredAt:    time.Now(),
	}
}

// NewSeatAccessEvent builds a seat blocked/unblocked event
func NewSeatAccessEvent(seatID, adminID string, blocked bool) *Event {
	eventType := EventSeatUnblocked
	if blocked {
		eventType = EventSeatBlocked
	}
	return &Event{
		Type:       eventType,
		SeatID:     seatID,
		UserID:     adminID,
		OccurredAt: time.Now(),
	}
}
