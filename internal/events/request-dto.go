package events

import "time"

type CreateEventRequest struct {
	Name               string    `json:"name" binding:"required,min=3,max=200"`
	Description        string    `json:"description" binding:"omitempty,max=2000"`
	Venue              string    `json:"venue" binding:"required,min=2,max=200"`
	StartsAt           time.Time `json:"starts_at" binding:"required"`
	MaxTicketsPerOrder int       `json:"max_tickets_per_order" binding:"omitempty,min=1,max=50"`
	MaxSeatsPerOrder   int       `json:"max_seats_per_order" binding:"omitempty,min=1,max=20"`
	SeatRows           int       `json:"seat_rows" binding:"omitempty,min=1,max=200"`
	SeatsPerRow        int       `json:"seats_per_row" binding:"omitempty,min=1,max=100"`
	AisleAfter         []int     `json:"aisle_after" binding:"omitempty,dive,min=1"`
	VIPRows            []int     `json:"vip_rows" binding:"omitempty,dive,min=0"`
	PremiumRows        []int     `json:"premium_rows" binding:"omitempty,dive,min=0"`
}

type UpdateEventRequest struct {
	Name               *string    `json:"name" binding:"omitempty,min=3,max=200"`
	Description        *string    `json:"description" binding:"omitempty,max=2000"`
	Venue              *string    `json:"venue" binding:"omitempty,min=2,max=200"`
	StartsAt           *time.Time `json:"starts_at" binding:"omitempty"`
	MaxTicketsPerOrder *int       `json:"max_tickets_per_order" binding:"omitempty,min=1,max=50"`
	MaxSeatsPerOrder   *int       `json:"max_seats_per_order" binding:"omitempty,min=1,max=20"`
	SeatRows           *int       `json:"seat_rows" binding:"omitempty,min=1,max=200"`
	SeatsPerRow        *int       `json:"seats_per_row" binding:"omitempty,min=1,max=100"`
	AisleAfter         *[]int     `json:"aisle_after" binding:"omitempty,dive,min=1"`
	VIPRows            *[]int     `json:"vip_rows" binding:"omitempty,dive,min=0"`
	PremiumRows        *[]int     `json:"premium_rows" binding:"omitempty,dive,min=0"`
}

type CreateTierRequest struct {
	Code          string   `json:"code" binding:"required,min=2,max=40"`
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice float64  `json:"original_price" binding:"omitempty,gte=0"`
	Description   string   `json:"description" binding:"omitempty,max=1000"`
	Features      []string `json:"features" binding:"omitempty,dive,max=200"`
	MaxPerOrder   int      `json:"max_per_order" binding:"omitempty,min=1,max=50"`
	Available     int      `json:"available" binding:"omitempty,min=0"`
	SortOrder     int      `json:"sort_order" binding:"omitempty,min=0"`
}

type UpdateTierRequest struct {
	Name          *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Price         *float64  `json:"price" binding:"omitempty,gt=0"`
	OriginalPrice *float64  `json:"original_price" binding:"omitempty,gte=0"`
	Description   *string   `json:"description" binding:"omitempty,max=1000"`
	Features      *[]string `json:"features" binding:"omitempty,dive,max=200"`
	MaxPerOrder   *int      `json:"max_per_order" binding:"omitempty,min=1,max=50"`
	Available     *int      `json:"available" binding:"omitempty,min=0"`
	SortOrder     *int      `json:"sort_order" binding:"omitempty,min=0"`
}

type EventFilters struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED"`
	Search string `form:"search"`
}
