package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/service"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/jwt"
)

// AuthMiddleware validates the Bearer token and loads the caller's identity
// into the gin context under the service package's context keys.
type AuthMiddleware gin.HandlerFunc

func NewAuthMiddleware(jwtManager *jwt.Manager) AuthMiddleware {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			service.AbortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		payload, err := jwtManager.Parse(token)
		if err != nil {
			service.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		sub, _ := payload["sub"].(string)
		userID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			service.AbortWithError(c, http.StatusUnauthorized, "invalid token subject")
			return
		}

		email, _ := payload["email"].(string)
		roleName, _ := payload["role"].(string)

		c.Set(service.CtxUserID, userID)
		c.Set(service.CtxUserEmail, email)
		c.Set(service.CtxUserRole, constants.ParseRole(roleName))
		c.Next()
	}
}

// RequireRole rejects callers whose token role is not in the allowed set.
// It must run after the auth middleware.
func RequireRole(allowed ...constants.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.CurrentUserRole(c)
		if !ok {
			service.AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		service.AbortWithError(c, http.StatusForbidden, "insufficient role")
	}
}
