package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ticketly/internal/events"
	"ticketly/internal/holds"
	"ticketly/internal/pricing"
	"ticketly/internal/seatmap"
	"ticketly/pkg/logger"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking does not belong to user")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrEmptyOrder       = errors.New("order has no tickets and no seats")
)

type Service interface {
	SetNotifier(notifier Notifier)
	ConfirmBooking(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*BookingConfirmation, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error

	// Quote prices an order without persisting anything, so clients can
	// show live totals while the user edits the cart.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

// EventGateway is the slice of the events service the checkout needs.
type EventGateway interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
	Catalog(ctx context.Context, eventID uuid.UUID) (*pricing.Catalog, error)
	GetSeatMap(ctx context.Context, eventID uuid.UUID) (*events.SeatMapResponse, error)
}

// HoldGateway is the slice of the holds engine the checkout needs.
type HoldGateway interface {
	Get(ctx context.Context, holdID string) (*holds.SeatHold, error)
	Validate(ctx context.Context, holdID, userID, eventID string, seatIDs []string) error
	Release(ctx context.Context, holdID string) (int, error)
}

// PromoGateway validates and redeems promo codes inside the checkout.
type PromoGateway interface {
	pricing.Validator
	Redeem(ctx context.Context, code string) error
}

// Notifier publishes booking lifecycle events. Nil disables publishing.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking) error
}

type service struct {
	repo     Repository
	events   EventGateway
	holds    HoldGateway
	promos   PromoGateway
	notifier Notifier
	rates    pricing.Rates
	log      *logger.Logger
}

func NewService(repo Repository, eventGateway EventGateway, holdGateway HoldGateway, promoGateway PromoGateway, rates pricing.Rates) Service {
	return &service{
		repo:   repo,
		events: eventGateway,
		holds:  holdGateway,
		promos: promoGateway,
		rates:  rates,
		log:    logger.GetDefault(),
	}
}

// SetNotifier wires the booking event publisher after construction.
func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// priceOrder builds a cart from the request and returns the cart, the
// applied promo (nil when none) and the computed totals.
func (s *service) priceOrder(ctx context.Context, event *events.Event, req QuoteRequest, seats []seatmap.Seat) (*pricing.Cart, *pricing.PromoResult, pricing.Totals, error) {
	var none pricing.Totals

	catalog, err := s.events.Catalog(ctx, event.ID)
	if err != nil {
		return nil, nil, none, err
	}

	cart := pricing.NewCart(catalog, event.MaxTicketsPerOrder)
	for _, line := range req.Tickets {
		for i := 0; i < line.Quantity; i++ {
			if err := cart.ChangeQuantity(line.TierCode, 1); err != nil {
				return nil, nil, none, fmt.Errorf("ticket %s: %w", line.TierCode, err)
			}
		}
	}
	cart.SetSeats(seats)

	if cart.TotalQuantity() == 0 && len(seats) == 0 {
		return nil, nil, none, ErrEmptyOrder
	}

	subtotal := cart.Subtotal()

	var promo *pricing.PromoResult
	if req.PromoCode != "" {
		state := pricing.NewPromoState()
		promo, err = state.Apply(ctx, s.promos, req.PromoCode, subtotal)
		if err != nil {
			return nil, nil, none, err
		}
	}

	discount := decimal.Zero
	if promo != nil {
		discount = promo.Discount
	}

	return cart, promo, pricing.ComputeTotals(subtotal, discount, s.rates), nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var seats []seatmap.Seat
	if len(req.SeatIDs) > 0 {
		seats, err = s.resolveSeats(ctx, eventID, req.SeatIDs)
		if err != nil {
			return nil, err
		}
	}

	_, promo, totals, err := s.priceOrder(ctx, event, req, seats)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{Totals: totals, Promo: promo}, nil
}

func (s *service) ConfirmBooking(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*BookingConfirmation, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished() {
		return nil, events.ErrEventNotOnSale
	}

	// Seats come exclusively through a hold; a checkout without a hold
	// is a tickets-only order.
	var seats []seatmap.Seat
	if req.HoldID != "" {
		hold, err := s.holds.Get(ctx, req.HoldID)
		if err != nil {
			return nil, fmt.Errorf("hold validation failed: %w", err)
		}
		if err := s.holds.Validate(ctx, req.HoldID, userID.String(), req.EventID, hold.SeatIDs); err != nil {
			return nil, fmt.Errorf("hold validation failed: %w", err)
		}
		seats, err = s.resolveSeats(ctx, eventID, hold.SeatIDs)
		if err != nil {
			return nil, err
		}
	}

	cart, promo, totals, err := s.priceOrder(ctx, event, req.QuoteRequest, seats)
	if err != nil {
		return nil, err
	}

	bookingRef, err := generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		ID:         uuid.New(),
		UserID:     userID,
		EventID:    eventID,
		BookingRef: bookingRef,
		Status:     "CONFIRMED",
		Tickets:    ticketLines(cart),
		Subtotal:   totals.Subtotal.InexactFloat64(),
		Discount:   totals.Discount.InexactFloat64(),
		Tax:        totals.Tax.InexactFloat64(),
		ServiceFee: totals.ServiceFee.InexactFloat64(),
		Total:      totals.Total.InexactFloat64(),
	}
	if promo != nil {
		booking.PromoCode = promo.Code
	}
	for _, seat := range seats {
		booking.Seats = append(booking.Seats, BookingSeat{
			ID:       uuid.New(),
			EventID:  eventID,
			SeatID:   seat.ID,
			SeatType: string(seat.Type),
			Price:    seat.Price,
		})
	}
	booking.Payments = []Payment{{
		ID:            uuid.New(),
		Amount:        booking.Total,
		Currency:      "USD",
		Status:        "PENDING",
		PaymentMethod: req.PaymentMethod,
		TransactionID: generateTransactionID(),
	}}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// Mock payment: mark the pending record completed.
	payment := &booking.Payments[0]
	payment.MarkCompleted()
	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	// Post-commit steps are best-effort; the booking stands even if they
	// fail.
	if promo != nil {
		if err := s.promos.Redeem(ctx, promo.Code); err != nil {
			s.log.WithError(err).Warn("failed to redeem promo code", "code", promo.Code, "booking_ref", bookingRef)
		}
	}
	if req.HoldID != "" {
		if _, err := s.holds.Release(ctx, req.HoldID); err != nil {
			s.log.WithError(err).Warn("failed to release hold after booking", "hold_id", req.HoldID)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			s.log.WithError(err).Warn("failed to publish booking confirmation", "booking_ref", bookingRef)
		}
	}

	s.log.LogBookingConfirmed(ctx, bookingRef, eventID.String(), userID.String())

	return &BookingConfirmation{
		BookingID:  booking.ID.String(),
		BookingRef: booking.BookingRef,
		Status:     booking.Status,
		Tickets:    booking.Tickets,
		Seats:      booking.Seats,
		Totals:     totals,
		Promo:      promo,
		Payment:    booking.Payments[0],
		CreatedAt:  booking.CreatedAt,
	}, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.GetUserBookings(ctx, userID, page, limit)
}

func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.GetBooking(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if booking.IsCancelled() {
		return ErrAlreadyCancelled
	}

	if err := s.repo.CancelBooking(ctx, booking); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Refund the completed payment, still mock.
	for i := range booking.Payments {
		if booking.Payments[i].IsCompleted() {
			booking.Payments[i].MarkRefunded()
			if err := s.repo.UpdatePayment(ctx, &booking.Payments[i]); err != nil {
				s.log.WithError(err).Warn("failed to mark payment refunded", "booking_ref", booking.BookingRef)
			}
		}
	}

	if s.notifier != nil {
		if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
			s.log.WithError(err).Warn("failed to publish booking cancellation", "booking_ref", booking.BookingRef)
		}
	}

	s.log.LogBookingCancelled(ctx, booking.BookingRef, booking.EventID.String(), userID.String())
	return nil
}

// resolveSeats maps seat ids onto the event's live seat map and rejects
// ids that do not exist. Seats reserved by the caller's own hold are
// still bookable; truly occupied seats fail at the unique constraint.
func (s *service) resolveSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]seatmap.Seat, error) {
	seatMap, err := s.events.GetSeatMap(ctx, eventID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]seatmap.Seat)
	for _, row := range seatMap.Rows {
		for _, seat := range row {
			byID[seat.ID] = seat
		}
	}

	seats := make([]seatmap.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown seat: %s", id)
		}
		if seat.Status == seatmap.SeatStatusOccupied {
			return nil, fmt.Errorf("seat %s is already sold", id)
		}
		seats = append(seats, seat)
	}
	return seats, nil
}

func ticketLines(cart *pricing.Cart) []TicketLine {
	var lines []TicketLine
	for _, ticket := range cart.Catalog().Types() {
		qty := cart.Quantity(ticket.ID)
		if qty == 0 {
			continue
		}
		lines = append(lines, TicketLine{
			TierCode: ticket.ID,
			Quantity: qty,
			Price:    ticket.Price.InexactFloat64(),
		})
	}
	return lines
}

func generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("TKT-%s-%s", timestamp, string(randomPart)), nil
}

func generateTransactionID() string {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", time.Now().Unix(), strings.ToUpper(short))
}
