package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jenga-25-26J/jenga-backend/internal/auth"
	"github.com/jenga-25-26J/jenga-backend/internal/platform/logger"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/service"
)

// Handler exposes the project endpoints. All routes run behind the
// bearer middleware, so the current user is always set.
type Handler struct {
	svc *service.ProjectService
	log *logger.Logger
}

func NewHandler(svc *service.ProjectService, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) save(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing JSON body"})
		return
	}

	user := auth.CurrentUser(c)
	projectID, err := h.svc.SaveDraft(c.Request.Context(), payload, user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project saved as draft", "project_id": projectID})
}

func (h *Handler) submit(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing JSON body"})
		return
	}

	user := auth.CurrentUser(c)
	result, err := h.svc.Submit(c.Request.Context(), payload, user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Project submitted successfully",
		"project_id":   result.ProjectID,
		"prompt_id":    result.PromptID,
		"llm_response": result.LLMResponse,
	})
}

func (h *Handler) listByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user := auth.CurrentUser(c)
	if user.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	projects, err := h.svc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": newProjectSummaries(projects)})
}

func (h *Handler) detail(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	user := auth.CurrentUser(c)
	detail, err := h.svc.GetDetail(c.Request.Context(), projectID, user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": newDetailResponse(detail)})
}

func (h *Handler) delete(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	user := auth.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), projectID, user.ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// writeError maps domain errors onto HTTP responses. Anything not in
// the taxonomy is a 500 and gets logged with its cause.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var extErr *domain.ExternalServiceError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to modify this project"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.As(err, &extErr):
		h.log.Error("external service failed", "service", extErr.Service, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan generation failed"})
	default:
		h.log.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
