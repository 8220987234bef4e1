package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyPromoCode is raised locally before any validator call when
	// the trimmed code is empty.
	ErrEmptyPromoCode = errors.New("promo code must not be empty")

	// ErrNothingToDiscount is raised locally when the subtotal is zero or
	// negative.
	ErrNothingToDiscount = errors.New("subtotal must be positive to apply a promo code")

	// ErrPromoAlreadyApplied enforces a single active promo per order.
	ErrPromoAlreadyApplied = errors.New("a promo code is already applied")

	// ErrStalePromoResult is returned when the cart changed while the
	// validator call was in flight; the response is discarded.
	ErrStalePromoResult = errors.New("promo validation superseded by a cart change")
)

// PromoResult is the validated outcome of applying a promo code, consumed
// as opaque data from the validator.
type PromoResult struct {
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	Message     string          `json:"message,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Validator is the external collaborator that validates a promo code
// against a subtotal and returns an absolute discount.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*PromoResult, error)
}

// PromoState tracks the promo lifecycle of a single order being built:
// no promo, then applied after a successful validation, then back to no
// promo on removal. A failed validation leaves the state untouched.
//
// Each Apply captures the current cart generation before calling the
// validator; Invalidate bumps the generation when the cart changes, so a
// slow validation that resolves after the cart moved on is discarded
// instead of applying a discount computed against a stale subtotal.
type PromoState struct {
	applied    *PromoResult
	generation uint64
}

// NewPromoState creates a state with no promo applied.
func NewPromoState() *PromoState {
	return &PromoState{}
}

// Applied returns the active promo result, or nil.
func (p *PromoState) Applied() *PromoResult {
	return p.applied
}

// Discount returns the active discount, zero when no promo is applied.
func (p *PromoState) Discount() decimal.Decimal {
	if p.applied == nil {
		return decimal.Zero
	}
	return p.applied.Discount
}

// Apply validates a code against the subtotal through the validator and
// stores the result. Local preconditions fail before the validator is
// called; validator failures surface unchanged and leave no partial state.
func (p *PromoState) Apply(ctx context.Context, v Validator, code string, subtotal decimal.Decimal) (*PromoResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyPromoCode
	}
	if !subtotal.IsPositive() {
		return nil, ErrNothingToDiscount
	}
	if p.applied != nil {
		return nil, ErrPromoAlreadyApplied
	}

	generation := p.generation

	result, err := v.Validate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	if generation != p.generation {
		return nil, ErrStalePromoResult
	}

	applied := *result
	applied.Code = strings.ToUpper(applied.Code)
	if applied.Discount.IsNegative() {
		applied.Discount = decimal.Zero
	}
	if applied.Discount.GreaterThan(subtotal) {
		applied.Discount = subtotal
	}

	p.applied = &applied
	return p.applied, nil
}

// Invalidate marks a cart change so any in-flight validation result is
// discarded when it resolves.
func (p *PromoState) Invalidate() {
	p.generation++
}

// Remove clears the applied promo. It always succeeds and is idempotent.
func (p *PromoState) Remove() {
	p.applied = nil
	p.generation++
}
