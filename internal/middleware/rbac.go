package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
	"github.com/zein-dev/kelasku-api/pkg/response"
)

// RequireRoles is the permission gate: it runs after JWT and rejects callers
// whose role is not in the allow-list before the handler executes. Ownership
// rules (own forum post) are re-checked inside the services since the route
// table only knows roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "Access denied. Admins only."))
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly gates the management routes (schedule, assignments, activities,
// external info writes).
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
