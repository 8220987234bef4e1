package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventTypeBookingCancelled EventType = "BOOKING_CANCELLED"
)

// BookingEvent is the message published to Kafka when a booking changes
// state. Consumers drive e-mail and push delivery from it.
type BookingEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	BookingRef string    `json:"booking_ref"`
	UserID     uuid.UUID `json:"user_id"`
	EventID    uuid.UUID `json:"event_id"`
	Total      float64   `json:"total"`
	SeatIDs    []string  `json:"seat_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events for one booking to the same partition
// so consumers see them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.BookingID.String()
}
