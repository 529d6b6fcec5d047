package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a bookable production, e.g. a movie or a concert
type Event struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Title      string    `json:"title" gorm:"not null;index"`
	EventType  string    `json:"event_type" gorm:"not null"` // MOVIE, CONCERT, SPORTS, THEATRE
	Location   string    `json:"location" gorm:"not null"`
	DateTime   time.Time `json:"date_time" gorm:"not null"`
	TotalSeats int       `json:"total_seats" gorm:"not null"`
	BannerURL  string    `json:"banner_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
