package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jenga-25-26J/jenga-backend/internal/auth/domain"
)

const ctxUserKey = "auth_user"

// SetCurrentUser stores the authenticated principal in the request
// context. Set by the bearer middleware.
func SetCurrentUser(c *gin.Context, u *domain.User) {
	c.Set(ctxUserKey, u)
}

// CurrentUser returns the authenticated principal, or nil on
// unauthenticated routes.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return u
}
