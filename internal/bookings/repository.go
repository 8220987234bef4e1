package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSeatAlreadySold surfaces the unique (event_id, seat_id) constraint
// when two checkouts race for the same seat.
var ErrSeatAlreadySold = errors.New("one or more seats were already sold")

type Repository interface {
	// CreateBooking persists a booking, its seats and its payment in a
	// single transaction.
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)

	// CancelBooking flips the status and frees the booking's seats so
	// they can be sold again.
	CancelBooking(ctx context.Context, booking *Booking) error
	UpdatePayment(ctx context.Context, payment *Payment) error

	// BookedSeatIDs lists sold seat ids for an event, feeding occupied
	// seats into seat map generation.
	BookedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique_seat_per_event") {
			return ErrSeatAlreadySold
		}
		return err
	}
	return nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Payments").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	err := query.
		Preload("Seats").
		Preload("Payments").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *repository) CancelBooking(ctx context.Context, booking *Booking) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":       "CANCELLED",
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
		if err != nil {
			return err
		}
		// Freeing the rows releases the unique seat constraint for resale.
		return tx.Delete(&BookingSeat{}, "booking_id = ?", booking.ID).Error
	})
}

func (r *repository) UpdatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *repository) BookedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	var seatIDs []string
	err := r.db.WithContext(ctx).
		Model(&BookingSeat{}).
		Where("event_id = ?", eventID).
		Pluck("seat_id", &seatIDs).Error
	return seatIDs, err
}
