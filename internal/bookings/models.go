package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a confirmed order: seat selections plus tier ticket
// quantities, priced through the order totals engine.
type Booking struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID     uuid.UUID    `gorm:"type:uuid;index;not null" json:"event_id"`
	BookingRef  string       `gorm:"unique;not null" json:"booking_ref"`
	Status      string       `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	Tickets     []TicketLine `gorm:"serializer:json" json:"tickets,omitempty"`
	PromoCode   string       `json:"promo_code,omitempty"`
	Subtotal    float64      `gorm:"not null" json:"subtotal"`
	Discount    float64      `gorm:"default:0" json:"discount"`
	Tax         float64      `gorm:"not null" json:"tax"`
	ServiceFee  float64      `gorm:"not null" json:"service_fee"`
	Total       float64      `gorm:"not null" json:"total"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CancelledAt *time.Time   `json:"cancelled_at,omitempty"`

	// Relationships
	Seats    []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payments []Payment     `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// TicketLine is one tier quantity in a booking, stored as JSON on the
// booking row.
type TicketLine struct {
	TierCode string  `json:"tier_code"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// BookingSeat records one sold seat. Seat ids are layout positions like
// "A1"; the unique (event_id, seat_id) constraint keeps a seat from
// being sold twice for the same event.
type BookingSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	EventID   uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatID    string    `gorm:"not null" json:"seat_id"`
	SeatType  string    `gorm:"type:varchar(20)" json:"seat_type"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// Payment tracks the (mock) payment for a booking.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Currency      string     `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status        string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string     `gorm:"unique" json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == "CONFIRMED"
}

func (b *Booking) IsCancelled() bool {
	return b.Status == "CANCELLED"
}

func (p *Payment) IsCompleted() bool {
	return p.Status == "COMPLETED"
}

func (p *Payment) MarkCompleted() {
	now := time.Now()
	p.Status = "COMPLETED"
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkRefunded() {
	now := time.Now()
	p.Status = "REFUNDED"
	p.ProcessedAt = &now
	p.UpdatedAt = now
}
