package bookings

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

// ShowInfo is the slice of show data the booking flow needs
type ShowInfo struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	TotalSeats int
}

// Catalog resolves events and shows without pulling in their packages
type Catalog interface {
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
	GetShowForEvent(ctx context.Context, showID, eventID uuid.UUID) (*ShowInfo, error)
	GetShow(ctx context.Context, showID uuid.UUID) (*ShowInfo, error)
}

// BookingNotification carries everything the post-commit pipeline needs
type BookingNotification struct {
	Reference string
	UserID    uuid.UUID
	EventID   uuid.UUID
	ShowID    uuid.UUID
	Seats     []string
	BookedAt  time.Time
}

// Notifier delivers booking confirmations. Failures must never affect the
// committed booking
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, n BookingNotification) error
}

type Service interface {
	BookSeats(ctx context.Context, userID uuid.UUID, req BookingRequest) (*BookingResult, error)
	BookedSeats(ctx context.Context, showID uuid.UUID) (*SeatMap, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBooking, error)
}

type service struct {
	repo     Repository
	guard    SeatGuard
	catalog  Catalog
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, guard SeatGuard, catalog Catalog, notifier Notifier, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		guard:    guard,
		catalog:  catalog,
		notifier: notifier,
		log:      log,
	}
}

// BookSeats runs the full reservation flow: validate the selection, check
// the durable store, claim each seat in the guard, commit, then notify.
// Any failure after a partial claim releases every seat claimed so far
func (s *service) BookSeats(ctx context.Context, userID uuid.UUID, req BookingRequest) (*BookingResult, error) {
	exists, err := s.catalog.EventExists(ctx, req.EventID)
	if err != nil {
		return nil, &PersistenceError{Op: "event lookup", Err: err}
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	show, err := s.catalog.GetShowForEvent(ctx, req.ShowID, req.EventID)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, &PersistenceError{Op: "show lookup", Err: err}
	}

	seats, err := ValidateSeats(req.Seats)
	if err != nil {
		return nil, err
	}

	// Pre-check against the durable store. Cheap rejection for seats that
	// are long gone; the unique constraint still backstops races
	taken, err := s.repo.FindExistingSeats(ctx, show.ID, seats)
	if err != nil {
		return nil, &PersistenceError{Op: "seat lookup", Err: err}
	}
	if len(taken) > 0 {
		sort.Strings(taken)
		s.log.LogSeatConflict(ctx, show.ID.String(), taken)
		return nil, &SeatsAlreadyBookedError{Labels: taken}
	}

	// Claim seats in lexical order so concurrent overlapping requests
	// collide on the same seat first instead of deadlocking on each other
	ordered := make([]string, len(seats))
	copy(ordered, seats)
	sort.Strings(ordered)

	claimed := make([]string, 0, len(ordered))
	for _, seat := range ordered {
		ok, err := s.guard.TryClaim(ctx, show.ID, seat)
		if err != nil {
			s.releaseClaims(ctx, show.ID, claimed, err)
			return nil, &PersistenceError{Op: "seat claim", Err: err}
		}
		if !ok {
			conflict := &SeatsAlreadyBookedError{Labels: []string{seat}}
			s.releaseClaims(ctx, show.ID, claimed, conflict)
			s.log.LogSeatConflict(ctx, show.ID.String(), []string{seat})
			return nil, conflict
		}
		claimed = append(claimed, seat)
	}

	reference := newBookingReference()
	bookedAt := time.Now().UTC()

	rows := make([]Booking, len(seats))
	for i, seat := range seats {
		rows[i] = Booking{
			ID:         uuid.New(),
			UserID:     userID,
			EventID:    req.EventID,
			ShowID:     show.ID,
			SeatLabel:  seat,
			SeatNumber: SeatNumberFromLabel(seat),
			Reference:  reference,
		}
	}

	if err := s.repo.CommitBooking(ctx, rows); err != nil {
		s.releaseClaims(ctx, show.ID, claimed, err)

		if errors.Is(err, ErrSeatConstraint) {
			// Another request won the durable race. Report the seats
			// that actually conflict, not the whole selection
			conflicting, lookupErr := s.repo.FindExistingSeats(ctx, show.ID, seats)
			if lookupErr != nil || len(conflicting) == 0 {
				conflicting = seats
			}
			sort.Strings(conflicting)
			s.log.LogSeatConflict(ctx, show.ID.String(), conflicting)
			return nil, &SeatsAlreadyBookedError{Labels: conflicting}
		}
		return nil, &PersistenceError{Op: "commit", Err: err}
	}

	s.log.LogBookingCommitted(ctx, reference, show.ID.String(), userID.String(), seats)

	s.notify(ctx, BookingNotification{
		Reference: reference,
		UserID:    userID,
		EventID:   req.EventID,
		ShowID:    show.ID,
		Seats:     seats,
		BookedAt:  bookedAt,
	})

	return &BookingResult{
		Reference: reference,
		EventID:   req.EventID,
		ShowID:    show.ID,
		Seats:     seats,
		BookedAt:  bookedAt,
	}, nil
}

// BookedSeats returns the seat map for a show. The guard is re-seeded from
// the durable store first, so reads heal a cold or flushed guard
func (s *service) BookedSeats(ctx context.Context, showID uuid.UUID) (*SeatMap, error) {
	show, err := s.catalog.GetShow(ctx, showID)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, &PersistenceError{Op: "show lookup", Err: err}
	}

	durable, err := s.repo.ListBookedSeats(ctx, showID)
	if err != nil {
		return nil, &PersistenceError{Op: "seat lookup", Err: err}
	}

	if err := s.guard.Seed(ctx, showID, durable); err != nil {
		s.log.WithError(err).WarnContext(ctx, "seat guard seed failed", "show_id", showID.String())
	}

	claimed, err := s.guard.ListClaimed(ctx, showID)
	if err != nil {
		// The durable rows alone are still a correct answer
		claimed = nil
	}

	seen := make(map[string]struct{}, len(durable)+len(claimed))
	booked := make([]string, 0, len(durable)+len(claimed))
	for _, seat := range durable {
		if _, ok := seen[seat]; !ok {
			seen[seat] = struct{}{}
			booked = append(booked, seat)
		}
	}
	for _, seat := range claimed {
		if _, ok := seen[seat]; !ok {
			seen[seat] = struct{}{}
			booked = append(booked, seat)
		}
	}
	sort.Strings(booked)

	return &SeatMap{
		ShowID:      showID,
		TotalSeats:  show.TotalSeats,
		BookedSeats: booked,
	}, nil
}

// GetUserBookings groups a user's booking rows by reference
func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBooking, error) {
	rows, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "booking lookup", Err: err}
	}

	index := make(map[string]int, len(rows))
	result := make([]UserBooking, 0, len(rows))
	for _, row := range rows {
		i, ok := index[row.Reference]
		if !ok {
			index[row.Reference] = len(result)
			result = append(result, UserBooking{
				Reference: row.Reference,
				EventID:   row.EventID,
				ShowID:    row.ShowID,
				Seats:     []string{row.SeatLabel},
				BookedAt:  row.CreatedAt,
			})
			continue
		}
		result[i].Seats = append(result[i].Seats, row.SeatLabel)
	}

	for i := range result {
		sort.Strings(result[i].Seats)
	}
	return result, nil
}

// releaseClaims undoes guard claims after a failed booking step. It runs on
// a detached context so a cancelled request still compensates
func (s *service) releaseClaims(ctx context.Context, showID uuid.UUID, claimed []string, cause error) {
	if len(claimed) == 0 {
		return
	}
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.guard.Release(releaseCtx, showID, claimed); err != nil {
		s.log.WithError(err).ErrorContext(ctx, "seat claim release failed",
			"show_id", showID.String(), "seats", claimed)
		return
	}
	s.log.LogCompensation(ctx, showID.String(), claimed, cause)
}

// notify hands the confirmation to the notifier and swallows any failure
func (s *service) notify(ctx context.Context, n BookingNotification) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.notifier.NotifyBookingConfirmed(notifyCtx, n); err != nil {
		s.log.LogNotifierFailure(ctx, n.Reference, err)
	}
}

// newBookingReference builds a short human-readable confirmation code
func newBookingReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TKT-" + id[:8]
}
