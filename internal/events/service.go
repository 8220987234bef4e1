package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketly/internal/pricing"
	"ticketly/internal/seatmap"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventNotOnSale   = errors.New("event is not published")
	ErrTierNotFound     = errors.New("ticket tier not found")
	ErrDuplicateTier    = errors.New("tier code already exists for this event")
	ErrEventHasBookings = errors.New("event has confirmed bookings and cannot be deleted")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetHeldSeatsProvider(provider HeldSeatsProvider)
	SetBookedSeatsProvider(provider BookedSeatsProvider)

	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, filters EventFilters) (*PaginatedEvents, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error)
	PublishEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	CancelEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateTier(ctx context.Context, eventID uuid.UUID, req CreateTierRequest) (*TicketTier, error)
	UpdateTier(ctx context.Context, tierID uuid.UUID, req UpdateTierRequest) (*TicketTier, error)
	DeleteTier(ctx context.Context, tierID uuid.UUID) error

	// Catalog builds the pricing catalog for an event's on-sale tiers.
	Catalog(ctx context.Context, eventID uuid.UUID) (*pricing.Catalog, error)
	// GetSeatMap assembles the live seat map: the generated layout with
	// booked seats marked occupied and currently held seats marked reserved.
	GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error)
}

// HeldSeatsProvider reports seats under an active hold for an event.
// Implemented by the holds engine; kept as an interface to avoid a
// circular dependency.
type HeldSeatsProvider interface {
	HeldSeats(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

// BookedSeatsProvider reports seats already sold for an event.
// Implemented by the bookings repository.
type BookedSeatsProvider interface {
	BookedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

type service struct {
	repo        Repository
	cache       cache.Service
	heldSeats   HeldSeatsProvider
	bookedSeats BookedSeatsProvider
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *service) SetHeldSeatsProvider(provider HeldSeatsProvider) {
	s.heldSeats = provider
}

func (s *service) SetBookedSeatsProvider(provider BookedSeatsProvider) {
	s.bookedSeats = provider
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cache == nil {
		return cache.ErrCacheMiss
	}
	return s.cache.Get(ctx, key, dest)
}

func (s *service) invalidateEventCache(ctx context.Context, eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	patterns := []string{
		constants.PATTERN_INVALIDATE_EVENTS_ALL,
		constants.BuildSeatMapLayoutKey(eventID.String()) + "*",
	}
	for _, pattern := range patterns {
		_ = s.cache.DeletePattern(ctx, pattern)
	}
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		Status:      StatusDraft,
	}
	if req.MaxTicketsPerOrder > 0 {
		event.MaxTicketsPerOrder = req.MaxTicketsPerOrder
	}
	if req.MaxSeatsPerOrder > 0 {
		event.MaxSeatsPerOrder = req.MaxSeatsPerOrder
	}
	if req.SeatRows > 0 {
		event.SeatRows = req.SeatRows
	}
	if req.SeatsPerRow > 0 {
		event.SeatsPerRow = req.SeatsPerRow
	}
	event.AisleAfter = req.AisleAfter
	event.VIPRows = req.VIPRows
	event.PremiumRows = req.PremiumRows

	// Reject layouts that cannot be generated before they reach the database.
	if _, err := seatmap.GenerateLayout(event.LayoutConfig(nil)); err != nil {
		return nil, fmt.Errorf("invalid seat layout: %w", err)
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateEventCache(ctx, event.ID)
	return event, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	cacheKey := constants.CACHE_KEY_EVENT_DETAIL + id.String()

	var cached Event
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	s.setCache(ctx, cacheKey, event, constants.TTL_EVENT_DETAIL)
	return event, nil
}

func (s *service) ListEvents(ctx context.Context, filters EventFilters) (*PaginatedEvents, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	cacheKey := constants.BuildEventsListKey(filters.Page, filters.Limit, filters.Status)
	if filters.Search == "" {
		var cached PaginatedEvents
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	if filters.Search == "" {
		s.setCache(ctx, cacheKey, result, constants.TTL_EVENT_LIST)
	}
	return result, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.MaxTicketsPerOrder != nil {
		updates["max_tickets_per_order"] = *req.MaxTicketsPerOrder
	}
	if req.MaxSeatsPerOrder != nil {
		updates["max_seats_per_order"] = *req.MaxSeatsPerOrder
	}

	// Layout changes are only allowed while the event is a draft; a
	// published map may already have holds and bookings against its seat IDs.
	layoutChanged := req.SeatRows != nil || req.SeatsPerRow != nil ||
		req.AisleAfter != nil || req.VIPRows != nil || req.PremiumRows != nil
	if layoutChanged {
		if event.Status != StatusDraft {
			return nil, fmt.Errorf("seat layout can only be changed while event is a draft")
		}
		probe := *event
		if req.SeatRows != nil {
			probe.SeatRows = *req.SeatRows
			updates["seat_rows"] = *req.SeatRows
		}
		if req.SeatsPerRow != nil {
			probe.SeatsPerRow = *req.SeatsPerRow
			updates["seats_per_row"] = *req.SeatsPerRow
		}
		if req.AisleAfter != nil {
			probe.AisleAfter = *req.AisleAfter
			updates["aisle_after"] = probe.AisleAfter
		}
		if req.VIPRows != nil {
			probe.VIPRows = *req.VIPRows
			updates["vip_rows"] = probe.VIPRows
		}
		if req.PremiumRows != nil {
			probe.PremiumRows = *req.PremiumRows
			updates["premium_rows"] = probe.PremiumRows
		}
		if _, err := seatmap.GenerateLayout(probe.LayoutConfig(nil)); err != nil {
			return nil, fmt.Errorf("invalid seat layout: %w", err)
		}
	}

	if len(updates) == 0 {
		return event, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidateEventCache(ctx, id)
	return s.repo.GetByID(ctx, id)
}

func (s *service) PublishEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.transition(ctx, id, StatusDraft, StatusPublished)
}

func (s *service) CancelEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.transition(ctx, id, StatusPublished, StatusCancelled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, from, to string) (*Event, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != from {
		return nil, fmt.Errorf("cannot move event from %s to %s", event.Status, to)
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"status": to}); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}
	s.invalidateEventCache(ctx, id)
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if event.Status == StatusPublished {
		if s.bookedSeats != nil {
			booked, err := s.bookedSeats.BookedSeatIDs(ctx, id)
			if err != nil {
				return err
			}
			if len(booked) > 0 {
				return ErrEventHasBookings
			}
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.invalidateEventCache(ctx, id)
	return nil
}

func (s *service) CreateTier(ctx context.Context, eventID uuid.UUID, req CreateTierRequest) (*TicketTier, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetTiersByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if t.Code == req.Code {
			return nil, ErrDuplicateTier
		}
	}

	tier := &TicketTier{
		ID:            uuid.New(),
		EventID:       eventID,
		Code:          req.Code,
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		Features:      req.Features,
		MaxPerOrder:   req.MaxPerOrder,
		Available:     req.Available,
		SortOrder:     len(existing),
	}
	if req.SortOrder > 0 {
		tier.SortOrder = req.SortOrder
	}

	if err := s.repo.CreateTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create tier: %w", err)
	}

	s.invalidateEventCache(ctx, eventID)
	return tier, nil
}

func (s *service) UpdateTier(ctx context.Context, tierID uuid.UUID, req UpdateTierRequest) (*TicketTier, error) {
	tier, err := s.repo.GetTierByID(ctx, tierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Features != nil {
		updates["features"] = *req.Features
	}
	if req.MaxPerOrder != nil {
		updates["max_per_order"] = *req.MaxPerOrder
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) == 0 {
		return tier, nil
	}

	if err := s.repo.UpdateTier(ctx, tierID, updates); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	s.invalidateEventCache(ctx, tier.EventID)
	return s.repo.GetTierByID(ctx, tierID)
}

func (s *service) DeleteTier(ctx context.Context, tierID uuid.UUID) error {
	tier, err := s.repo.GetTierByID(ctx, tierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTierNotFound
		}
		return err
	}
	if err := s.repo.DeleteTier(ctx, tierID); err != nil {
		return fmt.Errorf("failed to delete tier: %w", err)
	}
	s.invalidateEventCache(ctx, tier.EventID)
	return nil
}

func (s *service) Catalog(ctx context.Context, eventID uuid.UUID) (*pricing.Catalog, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished() {
		return nil, ErrEventNotOnSale
	}

	tiers := event.Tiers
	if len(tiers) == 0 {
		tiers, err = s.repo.GetTiersByEventID(ctx, eventID)
		if err != nil {
			return nil, err
		}
	}

	types := make([]pricing.TicketType, 0, len(tiers))
	for _, tier := range tiers {
		types = append(types, tier.ToTicketType())
	}
	return pricing.NewCatalog(types...), nil
}

func (s *service) GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished() {
		return nil, ErrEventNotOnSale
	}

	var occupied []string
	if s.bookedSeats != nil {
		occupied, err = s.bookedSeats.BookedSeatIDs(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booked seats: %w", err)
		}
	}

	layout, err := seatmap.GenerateLayout(event.LayoutConfig(occupied))
	if err != nil {
		return nil, fmt.Errorf("failed to generate seat map: %w", err)
	}

	var held []string
	if s.heldSeats != nil {
		held, err = s.heldSeats.HeldSeats(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load held seats: %w", err)
		}
		heldSet := make(map[string]struct{}, len(held))
		for _, id := range held {
			heldSet[id] = struct{}{}
		}
		for _, row := range layout.Rows {
			for i := range row {
				if _, ok := heldSet[row[i].ID]; ok && row[i].Status == seatmap.SeatStatusAvailable {
					row[i].Status = seatmap.SeatStatusReserved
				}
			}
		}
	}

	return &SeatMapResponse{
		EventID:    eventID.String(),
		MaxSeats:   event.MaxSeatsPerOrder,
		Rows:       layout.Rows,
		HeldSeats:  held,
		TotalSeats: layout.TotalSeats(),
	}, nil
}
