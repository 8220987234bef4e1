package promos

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount kinds. Percentage promos take Value as a percent of the
// subtotal, fixed promos take Value as a currency amount.
const (
	KindPercentage = "PERCENTAGE"
	KindFixed      = "FIXED"
)

// PromoCode is a redeemable discount code. Code is stored in canonical
// uppercase form; lookups normalize before querying.
type PromoCode struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Kind        string     `gorm:"type:varchar(20);not null;check:kind IN ('PERCENTAGE', 'FIXED')" json:"kind"`
	Value       float64    `gorm:"not null" json:"value"`
	Description string     `json:"description,omitempty"`
	MinSubtotal float64    `gorm:"default:0" json:"min_subtotal"`
	MaxUses     int        `gorm:"default:0" json:"max_uses"` // 0 means unlimited
	UsedCount   int        `gorm:"default:0" json:"used_count"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	Active      bool       `gorm:"default:true" json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName sets the table name for PromoCode
func (PromoCode) TableName() string {
	return "promo_codes"
}

// CanonicalCode normalizes a user-entered code to its stored form.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountFor computes the discount this promo grants against a subtotal,
// before any clamping by the pricing engine.
func (p *PromoCode) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	value := decimal.NewFromFloat(p.Value)
	if p.Kind == KindPercentage {
		return subtotal.Mul(value).Div(decimal.NewFromInt(100))
	}
	return value
}

// Exhausted reports whether the promo has no redemptions left.
func (p *PromoCode) Exhausted() bool {
	return p.MaxUses > 0 && p.UsedCount >= p.MaxUses
}
