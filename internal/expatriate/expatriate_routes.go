package expatriate

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	expat := r.Group("/expatriate")
	expat.Use(middleware.AuthMiddleware())
	{
		expat.POST("/calculations",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(authz, access.PermCalculationRun),
			handler.Calculate,
		)
	}
}
