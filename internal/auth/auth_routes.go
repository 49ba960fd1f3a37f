package auth

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 2), handler.Register)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
