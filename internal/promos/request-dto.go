package promos

import "time"

type CreatePromoRequest struct {
	Code        string     `json:"code" binding:"required,min=2,max=40"`
	Kind        string     `json:"kind" binding:"required,oneof=PERCENTAGE FIXED"`
	Value       float64    `json:"value" binding:"required,gt=0"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	MinSubtotal float64    `json:"min_subtotal" binding:"omitempty,gte=0"`
	MaxUses     int        `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom   *time.Time `json:"valid_from" binding:"omitempty"`
	ValidUntil  *time.Time `json:"valid_until" binding:"omitempty"`
	Active      *bool      `json:"active" binding:"omitempty"`
}

type UpdatePromoRequest struct {
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Value       *float64   `json:"value" binding:"omitempty,gt=0"`
	MinSubtotal *float64   `json:"min_subtotal" binding:"omitempty,gte=0"`
	MaxUses     *int       `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom   *time.Time `json:"valid_from" binding:"omitempty"`
	ValidUntil  *time.Time `json:"valid_until" binding:"omitempty"`
	Active      *bool      `json:"active" binding:"omitempty"`
}

type ValidatePromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}
