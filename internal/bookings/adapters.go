package bookings

import (
	"context"
	"errors"

	"ticketly/internal/events"
	"ticketly/internal/shows"

	"github.com/google/uuid"
)

// catalogAdapter bridges the events and shows packages to the Catalog
// interface the booking flow consumes
type catalogAdapter struct {
	events events.Repository
	shows  shows.Repository
}

func NewCatalog(eventRepo events.Repository, showRepo shows.Repository) Catalog {
	return &catalogAdapter{events: eventRepo, shows: showRepo}
}

func (a *catalogAdapter) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	_, err := a.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *catalogAdapter) GetShowForEvent(ctx context.Context, showID, eventID uuid.UUID) (*ShowInfo, error) {
	show, err := a.shows.GetByIDForEvent(ctx, showID, eventID)
	if err != nil {
		if errors.Is(err, shows.ErrShowNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return toShowInfo(show), nil
}

func (a *catalogAdapter) GetShow(ctx context.Context, showID uuid.UUID) (*ShowInfo, error) {
	show, err := a.shows.GetByID(ctx, showID)
	if err != nil {
		if errors.Is(err, shows.ErrShowNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return toShowInfo(show), nil
}

func toShowInfo(show *shows.Show) *ShowInfo {
	return &ShowInfo{
		ID:         show.ID,
		EventID:    show.EventID,
		TotalSeats: show.TotalSeats,
	}
}
