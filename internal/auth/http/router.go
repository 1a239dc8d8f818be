package http

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/jenga-25-26J/jenga-backend/internal/auth/middleware"
)

// Register mounts the user and admin routes. loginLimiter guards the
// credential endpoints; authenticated is the bearer middleware.
func (h *Handler) Register(api gin.IRouter, authenticated, loginLimiter gin.HandlerFunc) {
	api.POST("/register", loginLimiter, h.register)
	api.POST("/login", loginLimiter, h.login)

	users := api.Group("/users")
	users.Use(authenticated)
	users.POST("/reset_password", h.resetPassword)
	users.PUT("/profile", h.updateProfile)

	admin := api.Group("/admin")
	admin.Use(authenticated, authmw.RequireAdmin())
	admin.GET("/users", h.adminListUsers)
	admin.DELETE("/users/:id", h.adminDeleteUser)
}
