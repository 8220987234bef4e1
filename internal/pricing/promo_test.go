package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	validateFn func(ctx context.Context, code string, subtotal decimal.Decimal) (*PromoResult, error)
}

func (s *stubValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*PromoResult, error) {
	return s.validateFn(ctx, code, subtotal)
}

func okValidator(discount string) *stubValidator {
	return &stubValidator{
		validateFn: func(_ context.Context, code string, _ decimal.Decimal) (*PromoResult, error) {
			return &PromoResult{Code: code, Discount: d(discount), Message: "applied"}, nil
		},
	}
}

func TestPromoState_ApplySuccess(t *testing.T) {
	state := NewPromoState()

	result, err := state.Apply(context.Background(), okValidator("25"), "  save25 ", d("100"))
	require.NoError(t, err)

	assert.Equal(t, "SAVE25", result.Code)
	assert.True(t, result.Discount.Equal(d("25")))
	assert.True(t, state.Discount().Equal(d("25")))
}

func TestPromoState_LocalPreconditions(t *testing.T) {
	state := NewPromoState()
	called := false
	v := &stubValidator{
		validateFn: func(context.Context, string, decimal.Decimal) (*PromoResult, error) {
			called = true
			return nil, nil
		},
	}

	_, err := state.Apply(context.Background(), v, "   ", d("100"))
	assert.ErrorIs(t, err, ErrEmptyPromoCode)

	_, err = state.Apply(context.Background(), v, "SAVE25", decimal.Zero)
	assert.ErrorIs(t, err, ErrNothingToDiscount)

	// Preconditions fail before the collaborator is reached.
	assert.False(t, called)
}

func TestPromoState_ValidatorFailureLeavesStateUnapplied(t *testing.T) {
	state := NewPromoState()
	v := &stubValidator{
		validateFn: func(context.Context, string, decimal.Decimal) (*PromoResult, error) {
			return nil, errors.New("promo code has expired")
		},
	}

	_, err := state.Apply(context.Background(), v, "EXPIRED", d("100"))
	assert.Error(t, err)
	assert.Nil(t, state.Applied())
	assert.True(t, state.Discount().IsZero())
}

func TestPromoState_SingleActivePromo(t *testing.T) {
	state := NewPromoState()
	_, err := state.Apply(context.Background(), okValidator("10"), "FIRST", d("100"))
	require.NoError(t, err)

	_, err = state.Apply(context.Background(), okValidator("20"), "SECOND", d("100"))
	assert.ErrorIs(t, err, ErrPromoAlreadyApplied)
	assert.Equal(t, "FIRST", state.Applied().Code)
}

func TestPromoState_RemoveIdempotent(t *testing.T) {
	state := NewPromoState()
	_, err := state.Apply(context.Background(), okValidator("10"), "SAVE", d("100"))
	require.NoError(t, err)

	state.Remove()
	assert.Nil(t, state.Applied())
	assert.True(t, state.Discount().IsZero())

	// Removing with nothing applied is still fine.
	state.Remove()
	assert.Nil(t, state.Applied())
}

func TestPromoState_StaleResponseDiscarded(t *testing.T) {
	state := NewPromoState()

	// The cart changes while validation is in flight.
	v := &stubValidator{
		validateFn: func(_ context.Context, code string, _ decimal.Decimal) (*PromoResult, error) {
			state.Invalidate()
			return &PromoResult{Code: code, Discount: d("25")}, nil
		},
	}

	_, err := state.Apply(context.Background(), v, "SLOW", d("100"))
	assert.ErrorIs(t, err, ErrStalePromoResult)
	assert.Nil(t, state.Applied())
}

func TestPromoState_DiscountClampedToSubtotal(t *testing.T) {
	state := NewPromoState()

	result, err := state.Apply(context.Background(), okValidator("60"), "BIG", d("50"))
	require.NoError(t, err)
	assert.True(t, result.Discount.Equal(d("50")))
}
