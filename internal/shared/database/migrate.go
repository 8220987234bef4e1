package database

import (
	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/promos"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&events.Event{},
		&events.TicketTier{},
		&promos.PromoCode{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.Payment{},
	); err != nil {
		return err
	}
	return migrateConstraints(db)
}

// migrateConstraints adds constraints AutoMigrate cannot express. The unique
// pair below is the server-side backstop against double booking a seat.
func migrateConstraints(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_event
		ON booking_seats (event_id, seat_id);
	`).Error
}
