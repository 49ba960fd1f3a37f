package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorizer is a local interface so this package stays decoupled from the
// grant module; its Service satisfies it.
type Authorizer interface {
	Authorize(ctx context.Context, organizationID, companyID, userID, permissionKey string) (bool, error)
}

// Authorize guards a route with one permission key: explicit grants first,
// role defaults when no grant matches.
func Authorize(service Authorizer, permissionKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		organizationID := c.GetString("organization_id")

		if userID == "" || organizationID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		allowed, err := service.Authorize(
			c.Request.Context(),
			organizationID,
			c.GetString("company_id"),
			userID,
			permissionKey,
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to perform this action",
				"required": permissionKey,
			})
			return
		}

		c.Next()
	}
}
