package grant

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	grants := r.Group("/grants")
	grants.Use(middleware.AuthMiddleware())
	{
		grants.GET("", middleware.Authorize(service, access.PermGrantManage), handler.GetAll)
		grants.GET("/:id", middleware.Authorize(service, access.PermGrantManage), handler.GetByID)
		grants.POST("", middleware.Authorize(service, access.PermGrantManage), handler.Create)
		grants.PUT("/:id", middleware.Authorize(service, access.PermGrantManage), handler.Update)
		grants.DELETE("/:id", middleware.Authorize(service, access.PermGrantManage), handler.Delete)

		// Any authenticated user may probe their own effective permissions.
		grants.POST("/check", handler.Check)
	}

	permissions := r.Group("/permissions")
	permissions.Use(middleware.AuthMiddleware())
	{
		permissions.GET("", handler.Permissions)
	}
}
