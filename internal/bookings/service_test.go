package bookings

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ticketly/internal/events"
	"ticketly/internal/holds"
	"ticketly/internal/pricing"
	"ticketly/internal/seatmap"
)

type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
	payments []*Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepo) CreateBooking(_ context.Context, booking *Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserBookings(_ context.Context, userID uuid.UUID, _, _ int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) CancelBooking(_ context.Context, booking *Booking) error {
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = "CANCELLED"
	stored.Seats = nil
	return nil
}

func (f *fakeRepo) UpdatePayment(_ context.Context, payment *Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeRepo) BookedSeatIDs(_ context.Context, _ uuid.UUID) ([]string, error) {
	return nil, nil
}

type fakeEvents struct {
	event   *events.Event
	catalog *pricing.Catalog
	seatMap *events.SeatMapResponse
}

func (f *fakeEvents) GetEventByID(_ context.Context, _ uuid.UUID) (*events.Event, error) {
	return f.event, nil
}

func (f *fakeEvents) Catalog(_ context.Context, _ uuid.UUID) (*pricing.Catalog, error) {
	return f.catalog, nil
}

func (f *fakeEvents) GetSeatMap(_ context.Context, _ uuid.UUID) (*events.SeatMapResponse, error) {
	return f.seatMap, nil
}

type fakeHolds struct {
	hold     *holds.SeatHold
	released []string
}

func (f *fakeHolds) Get(_ context.Context, holdID string) (*holds.SeatHold, error) {
	if f.hold == nil || f.hold.ID != holdID {
		return nil, holds.ErrHoldNotFound
	}
	return f.hold, nil
}

func (f *fakeHolds) Validate(_ context.Context, holdID, userID, eventID string, _ []string) error {
	if f.hold == nil || f.hold.ID != holdID {
		return holds.ErrHoldNotFound
	}
	if f.hold.UserID != userID || f.hold.EventID != eventID {
		return holds.ErrHoldMismatch
	}
	return nil
}

func (f *fakeHolds) Release(_ context.Context, holdID string) (int, error) {
	f.released = append(f.released, holdID)
	return len(f.hold.SeatIDs), nil
}

type fakePromos struct {
	discount decimal.Decimal
	err      error
	redeemed []string
}

func (f *fakePromos) Validate(_ context.Context, code string, _ decimal.Decimal) (*pricing.PromoResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pricing.PromoResult{Code: strings.ToUpper(code), Discount: f.discount}, nil
}

func (f *fakePromos) Redeem(_ context.Context, code string) error {
	f.redeemed = append(f.redeemed, code)
	return nil
}

func testEvent() *events.Event {
	return &events.Event{
		ID:                 uuid.New(),
		Name:               "Go Conference",
		Status:             "PUBLISHED",
		MaxTicketsPerOrder: 10,
		MaxSeatsPerOrder:   8,
	}
}

func testCatalog() *pricing.Catalog {
	return pricing.NewCatalog(
		pricing.TicketType{ID: "general", Name: "General", Price: decimal.NewFromInt(50), MaxPerOrder: 10},
		pricing.TicketType{ID: "vip", Name: "VIP", Price: decimal.NewFromInt(150), MaxPerOrder: 4},
	)
}

func testSeatMap(event *events.Event) *events.SeatMapResponse {
	row := []seatmap.Seat{
		{ID: "A1", Row: "A", Number: 1, Type: seatmap.SeatTypeVIP, Status: seatmap.SeatStatusAvailable, Price: 199},
		{ID: "A2", Row: "A", Number: 2, Type: seatmap.SeatTypeVIP, Status: seatmap.SeatStatusAvailable, Price: 199},
	}
	return &events.SeatMapResponse{
		EventID:    event.ID.String(),
		MaxSeats:   event.MaxSeatsPerOrder,
		Rows:       [][]seatmap.Seat{row},
		TotalSeats: len(row),
	}
}

func defaultRates() pricing.Rates {
	return pricing.Rates{
		Tax:        decimal.NewFromFloat(0.05),
		ServiceFee: decimal.NewFromFloat(0.05),
	}
}

func newTestService(repo *fakeRepo, ev *fakeEvents, fh *fakeHolds, fp *fakePromos) Service {
	return NewService(repo, ev, fh, fp, defaultRates())
}

func TestConfirmBooking_TicketsOnly(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	fp := &fakePromos{}
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, fp)

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID: event.ID.String(),
			Tickets: []TicketLineRequest{{TierCode: "general", Quantity: 2}},
		},
		PaymentMethod: "CARD",
	}

	confirmation, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(confirmation.BookingRef, "TKT-"))
	assert.Equal(t, "CONFIRMED", confirmation.Status)
	// 100 subtotal, 5% tax, 5% fee
	assert.True(t, confirmation.Totals.Total.Equal(decimal.NewFromInt(110)), "got %s", confirmation.Totals.Total)
	assert.Equal(t, "COMPLETED", confirmation.Payment.Status)
	assert.Len(t, repo.bookings, 1)
	assert.Empty(t, fp.redeemed)
}

func TestConfirmBooking_WithHeldSeats(t *testing.T) {
	event := testEvent()
	userID := uuid.New()
	hold := &holds.SeatHold{
		ID:      uuid.New().String(),
		EventID: event.ID.String(),
		UserID:  userID.String(),
		SeatIDs: []string{"A1", "A2"},
	}
	fh := &fakeHolds{hold: hold}
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog(), seatMap: testSeatMap(event)}, fh, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest:  QuoteRequest{EventID: event.ID.String()},
		HoldID:        hold.ID,
		PaymentMethod: "CARD",
	}

	confirmation, err := svc.ConfirmBooking(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Len(t, confirmation.Seats, 2)
	// 398 subtotal, 5% tax, 5% fee
	assert.True(t, confirmation.Totals.Subtotal.Equal(decimal.NewFromInt(398)), "got %s", confirmation.Totals.Subtotal)
	assert.Equal(t, []string{hold.ID}, fh.released)
}

func TestConfirmBooking_HoldBelongsToAnotherUser(t *testing.T) {
	event := testEvent()
	hold := &holds.SeatHold{
		ID:      uuid.New().String(),
		EventID: event.ID.String(),
		UserID:  uuid.New().String(),
		SeatIDs: []string{"A1"},
	}
	svc := newTestService(newFakeRepo(), &fakeEvents{event: event, catalog: testCatalog(), seatMap: testSeatMap(event)}, &fakeHolds{hold: hold}, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest:  QuoteRequest{EventID: event.ID.String()},
		HoldID:        hold.ID,
		PaymentMethod: "CARD",
	}

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, holds.ErrHoldMismatch)
}

func TestConfirmBooking_WithPromo(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	fp := &fakePromos{discount: decimal.NewFromInt(25)}
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, fp)

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID:   event.ID.String(),
			Tickets:   []TicketLineRequest{{TierCode: "general", Quantity: 2}},
			PromoCode: "SAVE25",
		},
		PaymentMethod: "CARD",
	}

	confirmation, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	// subtotal 100, discount 25, taxable 75, tax 3.75, fee 5 -> 83.75
	assert.True(t, confirmation.Totals.Total.Equal(decimal.NewFromFloat(83.75)), "got %s", confirmation.Totals.Total)
	assert.Equal(t, []string{"SAVE25"}, fp.redeemed)
	require.NotNil(t, confirmation.Promo)
	assert.Equal(t, "SAVE25", confirmation.Promo.Code)
}

func TestConfirmBooking_PromoFailureAbortsCheckout(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	fp := &fakePromos{err: assert.AnError}
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, fp)

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID:   event.ID.String(),
			Tickets:   []TicketLineRequest{{TierCode: "general", Quantity: 1}},
			PromoCode: "BROKEN",
		},
		PaymentMethod: "CARD",
	}

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	assert.Error(t, err)
	assert.Empty(t, repo.bookings)
}

func TestConfirmBooking_EmptyOrder(t *testing.T) {
	event := testEvent()
	svc := newTestService(newFakeRepo(), &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest:  QuoteRequest{EventID: event.ID.String()},
		PaymentMethod: "CARD",
	}

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestConfirmBooking_EventNotOnSale(t *testing.T) {
	event := testEvent()
	event.Status = "DRAFT"
	svc := newTestService(newFakeRepo(), &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID: event.ID.String(),
			Tickets: []TicketLineRequest{{TierCode: "general", Quantity: 1}},
		},
		PaymentMethod: "CARD",
	}

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, events.ErrEventNotOnSale)
}

func TestConfirmBooking_TierGuardRejected(t *testing.T) {
	event := testEvent()
	svc := newTestService(newFakeRepo(), &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID: event.ID.String(),
			Tickets: []TicketLineRequest{{TierCode: "vip", Quantity: 5}}, // cap is 4
		},
		PaymentMethod: "CARD",
	}

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, pricing.ErrPerOrderLimit)
}

func TestQuote_DoesNotPersist(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	quote, err := svc.Quote(context.Background(), QuoteRequest{
		EventID: event.ID.String(),
		Tickets: []TicketLineRequest{{TierCode: "general", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, quote.Totals.Total.Equal(decimal.NewFromInt(110)), "got %s", quote.Totals.Total)
	assert.Empty(t, repo.bookings)
}

func TestCancelBooking(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	userID := uuid.New()
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	req := ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID: event.ID.String(),
			Tickets: []TicketLineRequest{{TierCode: "general", Quantity: 1}},
		},
		PaymentMethod: "CARD",
	}
	confirmation, err := svc.ConfirmBooking(context.Background(), userID, req)
	require.NoError(t, err)

	bookingID := uuid.MustParse(confirmation.BookingID)
	require.NoError(t, svc.CancelBooking(context.Background(), bookingID, userID))

	stored, err := svc.GetBooking(context.Background(), bookingID, userID)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled())

	err = svc.CancelBooking(context.Background(), bookingID, userID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBooking_WrongUser(t *testing.T) {
	event := testEvent()
	repo := newFakeRepo()
	owner := uuid.New()
	svc := newTestService(repo, &fakeEvents{event: event, catalog: testCatalog()}, &fakeHolds{}, &fakePromos{})

	confirmation, err := svc.ConfirmBooking(context.Background(), owner, ConfirmBookingRequest{
		QuoteRequest: QuoteRequest{
			EventID: event.ID.String(),
			Tickets: []TicketLineRequest{{TierCode: "general", Quantity: 1}},
		},
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), uuid.MustParse(confirmation.BookingID), uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}
