package events

import "ticketly/internal/seatmap"

// PaginatedEvents wraps a page of events with pagination metadata.
type PaginatedEvents struct {
	Events     []Event `json:"events"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

/// SeatMapResponse is the live seat map for an event: the generated layout
// with booked seats marked occupied, plus the ids currently held so clients
// can render them as reserved.
type SeatMapResponse struct {
	EventID    string             `json:"event_id"`
	MaxSeats   int                `json:"max_seats"`
	Rows       [][]seatmap.Seat   `json:"rows"`
	HeldSeats  []string           `json:"held_seats,omitempty"`
	TotalSeats int                `json:"total_seats"`
}
