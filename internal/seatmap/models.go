package seatmap

// SeatType classifies a seat tier. The tier is assigned once at layout
// generation from the row index and never changes afterwards.
type SeatType string

const (
	SeatTypeRegular    SeatType = "REGULAR"
	SeatTypePremium    SeatType = "PREMIUM"
	SeatTypeVIP        SeatType = "VIP"
	SeatTypeWheelchair SeatType = "WHEELCHAIR"
)

// SeatStatus is the stored state of a seat. SeatStatusSelected is a derived
// display state only: it is computed against the current selection and is
// never written back to a seat.
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusOccupied  SeatStatus = "OCCUPIED"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusSelected  SeatStatus = "SELECTED"
)

// Base prices per seat tier. Price is a pure function of type.
const (
	priceVIP     = 199
	pricePremium = 149
	priceRegular = 99
)

// Price returns the base price for a seat tier. Wheelchair seats are priced
// as regular seats.
func (t SeatType) Price() float64 {
	switch t {
	case SeatTypeVIP:
		return priceVIP
	case SeatTypePremium:
		return pricePremium
	default:
		return priceRegular
	}
}

// Seat is a single generated seat in a venue layout.
type Seat struct {
	ID            string     `json:"id"`
	Row           string     `json:"row"`
	Number        int        `json:"number"`
	Type          SeatType   `json:"type"`
	Status        SeatStatus `json:"status"`
	Price         float64    `json:"price"`
	HasAisleAfter bool       `json:"has_aisle_after"`
}

// Selectable reports whether the seat's stored status permits selection.
func (s Seat) Selectable() bool {
	return s.Status != SeatStatusOccupied && s.Status != SeatStatusReserved
}
