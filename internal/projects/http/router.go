package http

import (
	"github.com/gin-gonic/gin"
)

// Register mounts the project routes behind the bearer middleware.
func (h *Handler) Register(api gin.IRouter, authenticated gin.HandlerFunc) {
	projects := api.Group("/projects")
	projects.Use(authenticated)
	projects.POST("/save", h.save)
	projects.POST("/submit", h.submit)
	projects.GET("/user/:user_id", h.listByUser)
	projects.GET("/:id", h.detail)
	projects.DELETE("/:id", h.delete)
}
