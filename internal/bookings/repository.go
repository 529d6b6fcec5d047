package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the durable booking store. CommitBooking persists all rows
// of one request atomically and reports ErrSeatConstraint when the unique
// index on (show_id, seat_label) rejects any of them
type Repository interface {
	FindExistingSeats(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error)
	ListBookedSeats(ctx context.Context, showID uuid.UUID) ([]string, error)
	CommitBooking(ctx context.Context, rows []Booking) error
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindExistingSeats returns which of the given seats are already committed
// for the show
func (r *repository) FindExistingSeats(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}
	var taken []string
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("show_id = ? AND seat_label IN ?", showID, seats).
		Pluck("seat_label", &taken).Error
	if err != nil {
		return nil, err
	}
	return taken, nil
}

func (r *repository) ListBookedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	var seats []string
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("show_id = ?", showID).
		Order("seat_label ASC").
		Pluck("seat_label", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// CommitBooking inserts every row inside one transaction so a partial
// multi-seat booking can never become visible
func (r *repository) CommitBooking(ctx context.Context, rows []Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeatConstraint
		}
		return err
	}
	return nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, seat_label ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
