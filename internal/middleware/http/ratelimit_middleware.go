package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/limiter"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/service"
)

// RateLimit builds a middleware enforcing the named policy per caller. It
// must run after the auth middleware so the caller id is available.
func RateLimit(limiterManager *limiter.Manager, policyName string) gin.HandlerFunc {
	policyLimiter := limiterManager.Get(policyName)

	return func(c *gin.Context) {
		userID, ok := service.CurrentUserID(c)
		if !ok {
			service.AbortWithError(c, http.StatusUnauthorized, "unauthenticated")
			return
		}

		allowed, err := policyLimiter.Allow(c.Request.Context(), userID.Hex())
		if err != nil {
			service.AbortWithError(c, http.StatusInternalServerError, "failed to check rate limit")
			return
		}
		if !allowed {
			service.AbortWithError(c, http.StatusTooManyRequests, "too many requests")
			return
		}

		c.Next()
	}
}
