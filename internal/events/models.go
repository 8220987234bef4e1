package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ticketly/internal/pricing"
	"ticketly/internal/seatmap"
)

// Event defines a bookable event with its seat map configuration. The seat
// map itself is generated on demand from these columns; only the
// configuration is stored.
type Event struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name               string    `gorm:"not null;index" json:"name"`
	Description        string    `json:"description,omitempty"`
	Venue              string    `gorm:"not null" json:"venue"`
	StartsAt           time.Time `gorm:"not null;index" json:"starts_at"`
	Status             string    `gorm:"type:varchar(20);check:status IN ('DRAFT', 'PUBLISHED', 'CANCELLED');default:'DRAFT'" json:"status"`
	MaxTicketsPerOrder int       `gorm:"default:10" json:"max_tickets_per_order"`
	MaxSeatsPerOrder   int       `gorm:"default:8" json:"max_seats_per_order"`

	// Seat map configuration
	SeatRows    int   `gorm:"default:10" json:"seat_rows"`
	SeatsPerRow int   `gorm:"default:12" json:"seats_per_row"`
	AisleAfter  []int `gorm:"serializer:json" json:"aisle_after,omitempty"`
	VIPRows     []int `gorm:"serializer:json" json:"vip_rows,omitempty"`
	PremiumRows []int `gorm:"serializer:json" json:"premium_rows,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tiers []TicketTier `json:"tiers,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`
}

// TicketTier defines a priced admission category for an event.
type TicketTier struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID       uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_tier" json:"event_id"`
	Code          string    `gorm:"not null;uniqueIndex:idx_event_tier" json:"code"`
	Name          string    `gorm:"not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	Description   string    `json:"description,omitempty"`
	Features      []string  `gorm:"serializer:json" json:"features,omitempty"`
	MaxPerOrder   int       `json:"max_per_order,omitempty"` // 0 means engine default
	Available     int       `json:"available,omitempty"`     // 0 means unlimited
	SortOrder     int       `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// TableName sets the table name for TicketTier
func (TicketTier) TableName() string {
	return "ticket_tiers"
}

// IsPublished reports whether the event is open for booking.
func (e *Event) IsPublished() bool {
	return e.Status == "PUBLISHED"
}

// LayoutConfig builds the seat map configuration for this event, marking
// the given seat ids as occupied.
func (e *Event) LayoutConfig(occupiedSeats []string) seatmap.LayoutConfig {
	return seatmap.LayoutConfig{
		Rows:          e.SeatRows,
		SeatsPerRow:   e.SeatsPerRow,
		AisleAfter:    e.AisleAfter,
		VIPRows:       e.VIPRows,
		PremiumRows:   e.PremiumRows,
		OccupiedSeats: occupiedSeats,
	}
}

// ToTicketType converts a tier into a pricing engine catalog entry.
func (t TicketTier) ToTicketType() pricing.TicketType {
	return pricing.TicketType{
		ID:            t.Code,
		Name:          t.Name,
		Tier:          t.Code,
		Price:         decimal.NewFromFloat(t.Price),
		Description:   t.Description,
		Features:      t.Features,
		MaxPerOrder:   t.MaxPerOrder,
		Available:     t.Available,
		OriginalPrice: decimal.NewFromFloat(t.OriginalPrice),
	}
}
