package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed seat. A multi-seat request commits one row per
// seat, all sharing a booking reference. The composite unique index is the
// durable source of truth for seat ownership
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_bookings_user_id"`
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;not null"`
	ShowID     uuid.UUID `json:"show_id" gorm:"type:uuid;not null;uniqueIndex:uq_booking_show_seat"`
	SeatLabel  string    `json:"seat_label" gorm:"not null;uniqueIndex:uq_booking_show_seat"`
	SeatNumber int       `json:"seat_number" gorm:"not null"`
	Reference  string    `json:"reference" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingRequest represents a seat booking attempt
type BookingRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	ShowID  uuid.UUID `json:"show_id" binding:"required"`
	Seats   []string  `json:"seats" binding:"required"`
}

// BookingResult is returned after a successful commit
type BookingResult struct {
	Reference string    `json:"booking_reference"`
	EventID   uuid.UUID `json:"event_id"`
	ShowID    uuid.UUID `json:"show_id"`
	Seats     []string  `json:"seats"`
	BookedAt  time.Time `json:"booked_at"`
}

// SeatMap reports which seats of a show are taken
type SeatMap struct {
	ShowID      uuid.UUID `json:"show_id"`
	TotalSeats  int       `json:"total_seats"`
	BookedSeats []string  `json:"booked_seats"`
}

// UserBooking is one entry of a user's booking history
type UserBooking struct {
	Reference string    `json:"booking_reference"`
	EventID   uuid.UUID `json:"event_id"`
	ShowID    uuid.UUID `json:"show_id"`
	Seats     []string  `json:"seats"`
	BookedAt  time.Time `json:"booked_at"`
}
