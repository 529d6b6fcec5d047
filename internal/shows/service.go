package shows

import (
	"context"

	"ticketly/internal/events"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateShowRequest) (*Show, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)
	GetByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Show, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Show, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	eventRepo events.Repository
	cache     cache.Service
	log       *logger.Logger
}

func NewService(repo Repository, eventRepo events.Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{repo: repo, eventRepo: eventRepo, cache: cacheService, log: log}
}

func (s *service) Create(ctx context.Context, req CreateShowRequest) (*Show, error) {
	// Shows must hang off an existing event
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	show := &Show{
		ID:          uuid.New(),
		EventID:     req.EventID,
		TheaterName: req.TheaterName,
		ShowTime:    req.ShowTime,
		Price:       req.Price,
		TotalSeats:  req.TotalSeats,
	}
	if err := s.repo.Create(ctx, show); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return show, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Show, error) {
	return s.repo.GetByIDForEvent(ctx, id, eventID)
}

func (s *service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Show, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	var result []Show
	err := s.cache.GetOrSet(ctx, constants.BuildShowsByEventKey(eventID.String()), &result,
		constants.TTL_SHOWS_BY_EVENT, func() (interface{}, error) {
			return s.repo.ListByEvent(ctx, eventID)
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SHOWS_ALL); err != nil {
		s.log.WithError(err).WarnContext(ctx, "show cache invalidation failed")
	}
}
