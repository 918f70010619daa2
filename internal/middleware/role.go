package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequireRole must run after OAuth2Auth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
			return
		}

		role, _ := c.Get(ContextUserRole)
		userRole, ok := role.(string)
		if !ok || userRole != requiredRole {
			log.WithFields(logrus.Fields{
				"user_id":       userID,
				"user_role":     role,
				"required_role": requiredRole,
				"path":          c.Request.URL.Path,
			}).Warn("Insufficient permissions")
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.NewAPIError(models.ErrForbidden, "Insufficient permissions", map[string]interface{}{
					"required_role": requiredRole,
				}))
			return
		}

		c.Next()
	}
}
