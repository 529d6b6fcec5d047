package events

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers public and admin event routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	public := rg.Group("/events")
	{
		public.GET("", ctrl.ListEvents)
		public.GET("/:id", ctrl.GetEvent)
	}

	admin := rg.Group("/admin/events")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", ctrl.CreateEvent)
		admin.DELETE("/:id", ctrl.DeleteEvent)
	}
}
