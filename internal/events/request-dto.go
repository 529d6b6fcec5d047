package events

import "time"

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title      string    `json:"title" binding:"required,min=2,max=200"`
	EventType  string    `json:"event_type" binding:"required,oneof=MOVIE CONCERT SPORTS THEATRE"`
	Location   string    `json:"location" binding:"required"`
	DateTime   time.Time `json:"date_time" binding:"required,futuretime"`
	TotalSeats int       `json:"total_seats" binding:"required,min=1"`
	BannerURL  string    `json:"banner_url" binding:"omitempty,url"`
}
