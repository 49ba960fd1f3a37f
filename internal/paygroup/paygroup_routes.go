package paygroup

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	groups := r.Group("/pay-groups")
	groups.Use(middleware.AuthMiddleware())
	{
		groups.GET("", middleware.Authorize(authz, access.PermPayGroupRead), handler.GetAll)
		groups.GET("/:id", middleware.Authorize(authz, access.PermPayGroupRead), handler.GetByID)
		groups.POST("", middleware.Authorize(authz, access.PermPayGroupManage), handler.Create)
		groups.PUT("/:id", middleware.Authorize(authz, access.PermPayGroupManage), handler.Update)
		groups.DELETE("/:id", middleware.Authorize(authz, access.PermPayGroupManage), handler.Delete)
	}
}
