package holds

import (
	"context"
	"errors"
	"fmt"

	"ticketly/internal/events"
	"ticketly/internal/seatmap"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrTooManySeats    = errors.New("too many seats requested")
	ErrUnknownSeat     = errors.New("seat does not exist in this event's map")
	ErrSeatUnavailable = errors.New("seat is not available")
)

type Service interface {
	// HoldSeats validates the requested seats against the event's live
	// seat map and places an all-or-nothing hold on them.
	HoldSeats(ctx context.Context, userID string, req CreateHoldRequest) (*SeatHold, error)
	GetHold(ctx context.Context, holdID string) (*SeatHold, error)
	ReleaseHold(ctx context.Context, holdID, userID string) error
}

type service struct {
	engine       *Engine
	eventService events.Service
}

func NewService(engine *Engine, eventService events.Service) Service {
	return &service{engine: engine, eventService: eventService}
}

func (s *service) HoldSeats(ctx context.Context, userID string, req CreateHoldRequest) (*SeatHold, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	seatIDs := dedupe(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("no seats requested")
	}

	seatMap, err := s.eventService.GetSeatMap(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) > seatMap.MaxSeats {
		return nil, fmt.Errorf("%w: limit is %d seats per order", ErrTooManySeats, seatMap.MaxSeats)
	}

	byID := make(map[string]seatmap.Seat)
	for _, row := range seatMap.Rows {
		for _, seat := range row {
			byID[seat.ID] = seat
		}
	}
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, id)
		}
		if !seat.Selectable() {
			return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, id)
		}
	}

	hold, err := s.engine.Hold(ctx, eventID.String(), userID, seatIDs)
	if err != nil {
		return nil, err
	}
	logger.GetDefault().LogSeatHoldCreated(ctx, hold.ID, hold.EventID, len(hold.SeatIDs))
	return hold, nil
}

func (s *service) GetHold(ctx context.Context, holdID string) (*SeatHold, error) {
	return s.engine.Get(ctx, holdID)
}

func (s *service) ReleaseHold(ctx context.Context, holdID, userID string) error {
	hold, err := s.engine.Get(ctx, holdID)
	if err != nil {
		return err
	}
	if hold.UserID != userID {
		return ErrHoldMismatch
	}
	_, err = s.engine.Release(ctx, holdID)
	return err
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
