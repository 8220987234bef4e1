package promos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketly/internal/pricing"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPromoNotFound   = errors.New("promo code not found")
	ErrPromoInactive   = errors.New("promo code is not active")
	ErrPromoNotStarted = errors.New("promo code is not valid yet")
	ErrPromoExpired    = errors.New("promo code has expired")
	ErrPromoExhausted  = errors.New("promo code has no redemptions left")
	ErrBelowMinimum    = errors.New("order subtotal is below the promo minimum")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoCode, error)
	GetPromoByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)
	ListPromos(ctx context.Context, page, limit int) (*PaginatedPromos, error)
	UpdatePromo(ctx context.Context, id uuid.UUID, req UpdatePromoRequest) (*PromoCode, error)
	DeletePromo(ctx context.Context, id uuid.UUID) error

	// Validate checks a code against a subtotal and returns the discount
	// it grants. It satisfies the pricing engine's Validator port.
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*pricing.PromoResult, error)

	// Redeem consumes one use of the promo after a confirmed booking.
	Redeem(ctx context.Context, code string) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *service) invalidatePromoCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PROMOS_ALL)
}

func (s *service) CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoCode, error) {
	promo := &PromoCode{
		ID:          uuid.New(),
		Code:        CanonicalCode(req.Code),
		Kind:        req.Kind,
		Value:       req.Value,
		Description: req.Description,
		MinSubtotal: req.MinSubtotal,
		MaxUses:     req.MaxUses,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Active:      true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}
	if promo.Kind == KindPercentage && promo.Value > 100 {
		return nil, fmt.Errorf("percentage promo cannot exceed 100")
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}

	s.invalidatePromoCache(ctx)
	return promo, nil
}

func (s *service) GetPromoByID(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	promo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return promo, nil
}

func (s *service) ListPromos(ctx context.Context, page, limit int) (*PaginatedPromos, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	promos, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &PaginatedPromos{
		Promos:     promos,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *service) UpdatePromo(ctx context.Context, id uuid.UUID, req UpdatePromoRequest) (*PromoCode, error) {
	if _, err := s.GetPromoByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.MinSubtotal != nil {
		updates["min_subtotal"] = *req.MinSubtotal
	}
	if req.MaxUses != nil {
		updates["max_uses"] = *req.MaxUses
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		s.invalidatePromoCache(ctx)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) DeletePromo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPromoByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePromoCache(ctx)
	return nil
}

func (s *service) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*pricing.PromoResult, error) {
	promo, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var reject error
	switch {
	case !promo.Active:
		reject = ErrPromoInactive
	case promo.ValidFrom != nil && now.Before(*promo.ValidFrom):
		reject = ErrPromoNotStarted
	case promo.ValidUntil != nil && now.After(*promo.ValidUntil):
		reject = ErrPromoExpired
	case promo.Exhausted():
		reject = ErrPromoExhausted
	case subtotal.LessThan(decimal.NewFromFloat(promo.MinSubtotal)):
		reject = ErrBelowMinimum
	}
	if reject != nil {
		logger.GetDefault().LogPromoRejected(ctx, promo.Code, reject.Error())
		return nil, reject
	}

	discount := promo.DiscountFor(subtotal)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	logger.GetDefault().LogPromoApplied(ctx, promo.Code, discount.InexactFloat64())

	return &pricing.PromoResult{
		Code:        promo.Code,
		Discount:    discount.Round(2),
		Message:     fmt.Sprintf("Promo %s applied", promo.Code),
		Description: promo.Description,
	}, nil
}

func (s *service) Redeem(ctx context.Context, code string) error {
	promo, err := s.lookup(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.IncrementUsage(ctx, promo.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoExhausted
		}
		return err
	}
	s.invalidatePromoCache(ctx)
	return nil
}

// lookup fetches a promo by canonical code, cache-aside. Usage counters
// come from the cached copy and may lag briefly; Redeem enforces the cap
// against the database.
func (s *service) lookup(ctx context.Context, code string) (*PromoCode, error) {
	canonical := CanonicalCode(code)
	cacheKey := constants.BuildPromoKey(canonical)

	if s.cache != nil {
		var cached PromoCode
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	promo, err := s.repo.GetByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, promo, constants.TTL_PROMO_DETAIL)
	}
	return promo, nil
}
