package shows

import (
	"time"

	"github.com/google/uuid"
)

// Show is a scheduled screening of an event at a theater
type Show struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	EventID     uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	TheaterName string    `json:"theater_name" gorm:"not null"`
	ShowTime    time.Time `json:"show_time" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	TotalSeats  int       `json:"total_seats" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
