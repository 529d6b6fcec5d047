package shows

import (
	"time"

	"github.com/google/uuid"
)

// CreateShowRequest represents show creation data
type CreateShowRequest struct {
	EventID     uuid.UUID `json:"event_id" binding:"required"`
	TheaterName string    `json:"theater_name" binding:"required,min=2,max=200"`
	ShowTime    time.Time `json:"show_time" binding:"required,futuretime"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	TotalSeats  int       `json:"total_seats" binding:"required,min=1,max=80"`
}
