package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for events and ticket tiers.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, filters EventFilters) (*PaginatedEvents, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateTier(ctx context.Context, tier *TicketTier) error
	GetTierByID(ctx context.Context, id uuid.UUID) (*TicketTier, error)
	GetTiersByEventID(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error)
	UpdateTier(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteTier(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new event repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_tiers.sort_order ASC")
		}).
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, filters EventFilters) (*PaginatedEvents, error) {
	query := r.db.WithContext(ctx).Model(&Event{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR venue ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	offset := (filters.Page - 1) * filters.Limit
	var events []Event
	err := query.
		Order("starts_at ASC").
		Offset(offset).
		Limit(filters.Limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &PaginatedEvents{
		Events:     events,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id).Error
}

func (r *repository) CreateTier(ctx context.Context, tier *TicketTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *repository) GetTierByID(ctx context.Context, id uuid.UUID) (*TicketTier, error) {
	var tier TicketTier
	if err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) GetTiersByEventID(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error) {
	var tiers []TicketTier
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC").
		Find(&tiers).Error
	return tiers, err
}

func (r *repository) UpdateTier(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&TicketTier{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&TicketTier{}, "id = ?", id).Error
}
