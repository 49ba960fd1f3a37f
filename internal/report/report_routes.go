package report

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/payroll-summary",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authz, access.PermReportRead),
			handler.PayrollSummary,
		)
	}
}
