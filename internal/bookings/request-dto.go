package bookings

// TicketLineRequest is one tier quantity in an order.
type TicketLineRequest struct {
	TierCode string `json:"tier_code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=50"`
}

// QuoteRequest prices an order without committing it.
type QuoteRequest struct {
	EventID   string              `json:"event_id" binding:"required,uuid"`
	Tickets   []TicketLineRequest `json:"tickets" binding:"omitempty,dive"`
	SeatIDs   []string            `json:"seat_ids" binding:"omitempty,max=20,dive,seat_id"`
	PromoCode string              `json:"promo_code" binding:"omitempty,max=40"`
}

// ConfirmBookingRequest commits an order. Seats must already be held;
// the hold id stands in for the seat list.
type ConfirmBookingRequest struct {
	QuoteRequest
	HoldID        string `json:"hold_id" binding:"omitempty,uuid"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CARD UPI NETBANKING WALLET"`
}
