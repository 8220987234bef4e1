package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"ticketly/internal/seatmap"
)

// DefaultMaxPerOrder caps a single ticket tier per order when the tier does
// not carry its own cap.
const DefaultMaxPerOrder = 10

var (
	// ErrUnknownTicket is returned when a quantity change references a
	// ticket id that is not in the catalog.
	ErrUnknownTicket = errors.New("ticket type not found in catalog")

	// ErrPerOrderLimit is returned when a quantity change would exceed the
	// tier's per-order cap.
	ErrPerOrderLimit = errors.New("per-order limit for ticket type exceeded")

	// ErrInsufficientStock is returned when a quantity change would exceed
	// the tier's remaining stock.
	ErrInsufficientStock = errors.New("not enough tickets available")

	// ErrOrderLimit is returned when a quantity change would push the whole
	// order over the global ticket cap.
	ErrOrderLimit = errors.New("maximum tickets per order exceeded")
)

// TicketType is a named, priced category of admission with its own stock
// and per-order cap. Treated as read-only by the cart.
type TicketType struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Tier          string          `json:"tier"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description,omitempty"`
	Features      []string        `json:"features,omitempty"`
	MaxPerOrder   int             `json:"max_per_order,omitempty"` // 0 means DefaultMaxPerOrder
	Available     int             `json:"available,omitempty"`     // 0 means unlimited
	OriginalPrice decimal.Decimal `json:"original_price,omitempty"`
}

func (t TicketType) perOrderLimit() int {
	if t.MaxPerOrder > 0 {
		return t.MaxPerOrder
	}
	return DefaultMaxPerOrder
}

// Catalog is an ordered, read-only collection of ticket types.
type Catalog struct {
	types []TicketType
	byID  map[string]TicketType
}

// NewCatalog builds a catalog preserving the given tier order.
func NewCatalog(types ...TicketType) *Catalog {
	c := &Catalog{
		types: types,
		byID:  make(map[string]TicketType, len(types)),
	}
	for _, t := range types {
		c.byID[t.ID] = t
	}
	return c
}

// Get looks up a ticket type by id.
func (c *Catalog) Get(id string) (TicketType, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Types returns the catalog entries in order.
func (c *Catalog) Types() []TicketType {
	out := make([]TicketType, len(c.types))
	copy(out, c.types)
	return out
}

// Cart accumulates ticket quantities against a catalog, optionally alongside
// a list of selected seats, and derives the order subtotal. All mutation
// goes through ChangeQuantity so the invariants hold at every step.
type Cart struct {
	catalog    *Catalog
	maxTickets int
	quantities map[string]int
	seats      []seatmap.Seat
}

// NewCart creates an empty cart. maxTickets is the global cap across all
// tiers in the order.
func NewCart(catalog *Catalog, maxTickets int) *Cart {
	return &Cart{
		catalog:    catalog,
		maxTickets: maxTickets,
		quantities: make(map[string]int),
	}
}

// ChangeQuantity applies a delta to a tier's quantity, clamped at zero on
// the low end. Four guards must all hold or the change is rejected whole:
// the tier must exist, the candidate must not exceed the tier's per-order
// cap, must not exceed its stock, and the order total must stay within the
// global cap.
func (c *Cart) ChangeQuantity(ticketID string, delta int) error {
	ticket, ok := c.catalog.Get(ticketID)
	if !ok {
		return ErrUnknownTicket
	}

	candidate := c.quantities[ticketID] + delta
	if candidate < 0 {
		candidate = 0
	}

	if candidate > ticket.perOrderLimit() {
		return ErrPerOrderLimit
	}
	if ticket.Available > 0 && candidate > ticket.Available {
		return ErrInsufficientStock
	}

	others := 0
	for id, qty := range c.quantities {
		if id != ticketID {
			others += qty
		}
	}
	if others+candidate > c.maxTickets {
		return ErrOrderLimit
	}

	if candidate == 0 {
		delete(c.quantities, ticketID)
	} else {
		c.quantities[ticketID] = candidate
	}
	return nil
}

// Catalog returns the catalog this cart prices against.
func (c *Cart) Catalog() *Catalog {
	return c.catalog
}

// Quantity returns the chosen quantity for a tier, zero if absent.
func (c *Cart) Quantity(ticketID string) int {
	return c.quantities[ticketID]
}

// Quantities returns a copy of the tier-id to quantity mapping.
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.quantities))
	for id, qty := range c.quantities {
		out[id] = qty
	}
	return out
}

// TotalQuantity sums the quantities across all tiers.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// SetSeats replaces the cart's seat list with a snapshot from the seat map
// engine. Each report is a full replacement of the previous list.
func (c *Cart) SetSeats(seats []seatmap.Seat) {
	c.seats = make([]seatmap.Seat, len(seats))
	copy(c.seats, seats)
}

// Seats returns the seats currently riding in the cart.
func (c *Cart) Seats() []seatmap.Seat {
	out := make([]seatmap.Seat, len(c.seats))
	copy(out, c.seats)
	return out
}

// Subtotal is the sum of price times quantity over catalog entries present
// in the cart, plus the prices of any selected seats. A quantity for an id
// the catalog no longer knows contributes nothing.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for id, qty := range c.quantities {
		ticket, ok := c.catalog.Get(id)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(ticket.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	for _, seat := range c.seats {
		subtotal = subtotal.Add(decimal.NewFromFloat(seat.Price))
	}
	return subtotal
}
