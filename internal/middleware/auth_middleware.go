package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token (header or cookie) and loads
// the tenant identity into the gin context: user_id, organization_id,
// company_id, role (primary) and role_ids.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			message := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
				message = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		organizationID, ok := claims["organization_id"].(string)
		if !ok || organizationID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Organization ID not found in token", nil)
			c.Abort()
			return
		}

		// company_id is optional: org-level users act without one.
		companyID, _ := claims["company_id"].(string)
		role, _ := claims["role"].(string)

		var roleIDs []string
		if rawRoles, ok := claims["role_ids"].([]interface{}); ok {
			for _, raw := range rawRoles {
				if id, ok := raw.(string); ok {
					roleIDs = append(roleIDs, id)
				}
			}
		}

		c.Set("user_id", userID)
		c.Set("organization_id", organizationID)
		c.Set("company_id", companyID)
		c.Set("role", role)
		c.Set("role_ids", roleIDs)

		c.Next()
	}
}
