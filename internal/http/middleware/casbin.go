package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
)

// CasbinMiddleware authorizes requests after authentication
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW checks the caller's role against the policy store
type CasbinMW struct {
	policySvc domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService) *CasbinMW {
	return &CasbinMW{policySvc: policySvc}
}

// Enforce returns the casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		if c.GetString(UserIDKey) == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			return
		}

		// Policies are stored per role, prefixed with "role_"
		allowed, err := mw.policySvc.CheckPermission("role_"+role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("authorization check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			return
		}

		c.Next()
	})
}

var _ CasbinMiddleware = (*CasbinMW)(nil)
