package auth

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth routes on the given router group
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Register)
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/refresh", ctrl.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.GET("/me", ctrl.GetProfile)
		}
	}
}
