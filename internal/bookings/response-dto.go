package bookings

import (
	"time"

	"ticketly/internal/pricing"
)

// QuoteResponse is a priced but uncommitted order.
type QuoteResponse struct {
	Totals pricing.Totals       `json:"totals"`
	Promo  *pricing.PromoResult `json:"promo,omitempty"`
}

// BookingConfirmation is the full checkout result returned to the client.
type BookingConfirmation struct {
	BookingID  string               `json:"booking_id"`
	BookingRef string               `json:"booking_ref"`
	Status     string               `json:"status"`
	Tickets    []TicketLine         `json:"tickets,omitempty"`
	Seats      []BookingSeat        `json:"seats,omitempty"`
	Totals     pricing.Totals       `json:"totals"`
	Promo      *pricing.PromoResult `json:"promo,omitempty"`
	Payment    Payment              `json:"payment"`
	CreatedAt  time.Time            `json:"created_at"`
}

// PaginatedBookings wraps a user's booking history page.
type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
