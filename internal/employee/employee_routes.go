package employee

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authz middleware.Authorizer,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authz, access.PermEmployeeRead),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(authz, access.PermEmployeeRead),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authz, access.PermEmployeeRead),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authz, access.PermEmployeeCreate),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authz, access.PermEmployeeUpdate),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Authorize(authz, access.PermEmployeeDelete),
			handler.Delete,
		)
	}
}
