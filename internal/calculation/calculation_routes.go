package calculation

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	calculations := r.Group("/calculations")
	calculations.Use(middleware.AuthMiddleware())
	{
		calculations.POST("",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(authz, access.PermCalculationRun),
			handler.Calculate,
		)
	}
}
