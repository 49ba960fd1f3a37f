package payrun

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, rdb *redis.Client) {
	runs := r.Group("/pay-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.Authorize(authz, access.PermPayRunRead), handler.GetAll)
		runs.GET("/:id", middleware.Authorize(authz, access.PermPayRunRead), handler.GetByID)
		runs.GET("/:id/entries", middleware.Authorize(authz, access.PermPayRunRead), handler.GetEntries)
		runs.GET("/:id/entries/:entryId/payslip", middleware.Authorize(authz, access.PermPayRunRead), handler.DownloadPayslip)

		runs.POST("", middleware.Authorize(authz, access.PermPayRunCreate), handler.Create)

		// Processing and approval mutate money; idempotency keys guard
		// against double submission from retried clients.
		runs.POST("/:id/process",
			middleware.Idempotency(rdb),
			middleware.Authorize(authz, access.PermPayRunProcess),
			handler.Process,
		)
		runs.POST("/:id/approve",
			middleware.Idempotency(rdb),
			middleware.Authorize(authz, access.PermPayRunApprove),
			handler.Approve,
		)
		runs.POST("/:id/pay",
			middleware.Idempotency(rdb),
			middleware.Authorize(authz, access.PermPayRunPay),
			handler.MarkPaid,
		)

		runs.DELETE("/:id", middleware.Authorize(authz, access.PermPayRunDelete), handler.Delete)
	}
}
