package events

import (
	"context"

	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{repo: repo, cache: cacheService, log: log}
}

func (s *service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		ID:         uuid.New(),
		Title:      req.Title,
		EventType:  req.EventType,
		Location:   req.Location,
		DateTime:   req.DateTime,
		TotalSeats: req.TotalSeats,
		BannerURL:  req.BannerURL,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := s.cache.GetOrSet(ctx, constants.BuildEventDetailKey(id.String()), &event,
		constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) List(ctx context.Context) ([]Event, error) {
	var events []Event
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_EVENTS_LIST, &events,
		constants.TTL_EVENT_LIST, func() (interface{}, error) {
			return s.repo.List(ctx)
		})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL); err != nil {
		s.log.WithError(err).WarnContext(ctx, "event cache invalidation failed")
	}
}
