package organization

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	org := r.Group("/organization")
	org.Use(middleware.AuthMiddleware())
	{
		org.GET("", handler.Get)
		org.PUT("", middleware.Authorize(authz, access.PermOrganizationManage), handler.Update)
	}

	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("", handler.GetCompanies)
		companies.GET("/:id", handler.GetCompanyByID)
		companies.POST("", middleware.Authorize(authz, access.PermOrganizationManage), handler.CreateCompany)
		companies.PUT("/:id", middleware.Authorize(authz, access.PermOrganizationManage), handler.UpdateCompany)
		companies.DELETE("/:id", middleware.Authorize(authz, access.PermOrganizationManage), handler.DeleteCompany)
	}
}
