package bookings

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Everything here requires auth
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/bookings")
	group.Use(middleware.JWTAuth())
	{
		group.POST("/book", ctrl.BookSeats)
		group.GET("/booked-seats/:showId", ctrl.GetBookedSeats)
		group.GET("/me", ctrl.GetMyBookings)
	}
}
