package shows

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers public and admin show routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	public := rg.Group("/shows")
	{
		public.GET("/:id", ctrl.GetShow)
		public.GET("/event/:eventId", ctrl.ListShowsByEvent)
	}

	admin := rg.Group("/admin/shows")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", ctrl.CreateShow)
		admin.DELETE("/:id", ctrl.DeleteShow)
	}
}
