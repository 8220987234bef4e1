package promos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	promos map[string]*PromoCode // keyed by canonical code
}

func newFakeRepo(promos ...*PromoCode) *fakeRepo {
	repo := &fakeRepo{promos: make(map[string]*PromoCode)}
	for _, p := range promos {
		repo.promos[p.Code] = p
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, promo *PromoCode) error {
	if _, ok := f.promos[promo.Code]; ok {
		return ErrCodeTaken
	}
	f.promos[promo.Code] = promo
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*PromoCode, error) {
	for _, p := range f.promos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*PromoCode, error) {
	if p, ok := f.promos[CanonicalCode(code)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(_ context.Context, _, _ int) ([]PromoCode, int64, error) {
	var out []PromoCode
	for _, p := range f.promos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, p := range f.promos {
		if p.ID == id {
			delete(f.promos, code)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) IncrementUsage(_ context.Context, id uuid.UUID) error {
	for _, p := range f.promos {
		if p.ID == id {
			if p.Exhausted() {
				return gorm.ErrRecordNotFound
			}
			p.UsedCount++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func percentPromo(code string, percent float64) *PromoCode {
	return &PromoCode{
		ID:     uuid.New(),
		Code:   code,
		Kind:   KindPercentage,
		Value:  percent,
		Active: true,
	}
}

func TestValidate_PercentageDiscount(t *testing.T) {
	svc := NewService(newFakeRepo(percentPromo("SAVE25", 25)))

	result, err := svc.Validate(context.Background(), "save25", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "SAVE25", result.Code)
	assert.True(t, result.Discount.Equal(decimal.NewFromInt(25)), "got %s", result.Discount)
}

func TestValidate_FixedDiscount(t *testing.T) {
	promo := &PromoCode{ID: uuid.New(), Code: "TENOFF", Kind: KindFixed, Value: 10, Active: true}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Validate(context.Background(), "TENOFF", decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, result.Discount.Equal(decimal.NewFromInt(10)), "got %s", result.Discount)
}

func TestValidate_FixedDiscountClampedToSubtotal(t *testing.T) {
	promo := &PromoCode{ID: uuid.New(), Code: "BIGOFF", Kind: KindFixed, Value: 60, Active: true}
	svc := NewService(newFakeRepo(promo))

	result, err := svc.Validate(context.Background(), "BIGOFF", decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, result.Discount.Equal(decimal.NewFromInt(50)), "got %s", result.Discount)
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestValidate_InactivePromo(t *testing.T) {
	promo := percentPromo("OLD", 10)
	promo.Active = false
	svc := NewService(newFakeRepo(promo))

	_, err := svc.Validate(context.Background(), "OLD", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoInactive)
}

func TestValidate_TimeWindow(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	notStarted := percentPromo("SOON", 10)
	notStarted.ValidFrom = &future

	expired := percentPromo("GONE", 10)
	expired.ValidUntil = &past

	svc := NewService(newFakeRepo(notStarted, expired))

	_, err := svc.Validate(context.Background(), "SOON", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoNotStarted)

	_, err = svc.Validate(context.Background(), "GONE", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoExpired)
}

func TestValidate_Exhausted(t *testing.T) {
	promo := percentPromo("LIMITED", 10)
	promo.MaxUses = 2
	promo.UsedCount = 2
	svc := NewService(newFakeRepo(promo))

	_, err := svc.Validate(context.Background(), "LIMITED", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrPromoExhausted)
}

func TestValidate_BelowMinimumSubtotal(t *testing.T) {
	promo := percentPromo("SPEND50", 10)
	promo.MinSubtotal = 50
	svc := NewService(newFakeRepo(promo))

	_, err := svc.Validate(context.Background(), "SPEND50", decimal.NewFromInt(49))
	assert.ErrorIs(t, err, ErrBelowMinimum)

	_, err = svc.Validate(context.Background(), "SPEND50", decimal.NewFromInt(50))
	assert.NoError(t, err)
}

func TestValidate_CodeNormalization(t *testing.T) {
	svc := NewService(newFakeRepo(percentPromo("SAVE25", 25)))

	result, err := svc.Validate(context.Background(), "  save25  ", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "SAVE25", result.Code)
}

func TestRedeem_ConsumesUse(t *testing.T) {
	promo := percentPromo("ONCE", 10)
	promo.MaxUses = 1
	repo := newFakeRepo(promo)
	svc := NewService(repo)

	require.NoError(t, svc.Redeem(context.Background(), "ONCE"))
	assert.Equal(t, 1, promo.UsedCount)

	err := svc.Redeem(context.Background(), "ONCE")
	assert.ErrorIs(t, err, ErrPromoExhausted)
}

func TestCreatePromo_RejectsPercentOver100(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code:  "TOOMUCH",
		Kind:  KindPercentage,
		Value: 150,
	})
	assert.Error(t, err)
}

func TestCreatePromo_CanonicalizesCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	promo, err := svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code:  " early-bird ",
		Kind:  KindFixed,
		Value: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "EARLY-BIRD", promo.Code)
}
