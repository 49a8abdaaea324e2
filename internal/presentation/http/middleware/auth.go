package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey          = "user_id"
	UserEmailKey       = "user_email"
	UserRolesKey       = "user_roles"
	UserPermissionsKey = "user_permissions"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperror.NewAppError(401, "Authorization header is required"))
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			response.Abort(c, apperror.NewAppError(401, "Invalid authorization header format"))
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil || claims.UserID == uuid.Nil {
			response.Abort(c, apperror.NewAppError(401, "Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(UserPermissionsKey, claims.Permissions)

		c.Next()
	}
}

// RequirePermission rejects users whose token lacks permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(c.GetStringSlice(UserPermissionsKey), permission) {
			response.Abort(c, apperror.NewForbiddenError("You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// RequireRole rejects users holding none of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles := c.GetStringSlice(UserRolesKey)
		for _, role := range roles {
			if slices.Contains(userRoles, role) {
				c.Next()
				return
			}
		}
		response.Abort(c, apperror.NewForbiddenError("Insufficient role privileges"))
	}
}
