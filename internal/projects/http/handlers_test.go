package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenga-25-26J/jenga-backend/internal/auth"
	authdomain "github.com/jenga-25-26J/jenga-backend/internal/auth/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/platform/logger"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/cache"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/repository"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/service"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/validation"
)

// stubStore is a scriptable service.AggregateStore.
type stubStore struct {
	saveID     int64
	saveErr    error
	promptID   int64
	detailRows []repository.DetailRow
	projects   []domain.Project
	owner      int64
	ownerErr   error
	deleted    bool
}

func (s *stubStore) SaveAggregate(context.Context, *domain.ProjectDetail, int64, string) (int64, error) {
	return s.saveID, s.saveErr
}

func (s *stubStore) ListByOwner(context.Context, int64) ([]domain.Project, error) {
	return s.projects, nil
}

func (s *stubStore) DetailRows(context.Context, int64, int64) ([]repository.DetailRow, error) {
	return s.detailRows, nil
}

func (s *stubStore) Owner(context.Context, int64) (int64, error) {
	return s.owner, s.ownerErr
}

func (s *stubStore) Delete(context.Context, int64, int64) (bool, error) {
	return s.deleted, nil
}

func (s *stubStore) AppendPrompt(context.Context, int64, string) (int64, error) {
	return s.promptID, nil
}

func (s *stubStore) AppendGeneration(context.Context, int64, int64, string) error {
	return nil
}

func (s *stubStore) LatestGeneration(context.Context, int64) (*string, error) {
	return nil, nil
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(context.Context, string) (string, error) {
	return s.response, s.err
}

func newTestRouter(store *stubStore, llm *stubLLM, user *authdomain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewProjectService(store, llm, cache.NewGenerationCache(nil, 0), validation.NewPolicy(nil, nil), logger.NewNop())
	handler := NewHandler(svc, logger.NewNop())

	r := gin.New()
	principal := func(c *gin.Context) {
		auth.SetCurrentUser(c, user)
		c.Next()
	}
	handler.Register(r.Group("/api"), principal)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testUser() *authdomain.User {
	return &authdomain.User{ID: 9, Email: "amara@example.com", Role: authdomain.RoleUser, Status: authdomain.StatusActive}
}

func TestSaveDraftEndpoint(t *testing.T) {
	store := &stubStore{saveID: 42}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodPost, "/api/projects/save", map[string]interface{}{
		"name":             "Inventory System",
		"goal_description": "Track stock",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project saved as draft","project_id":42}`, w.Body.String())
}

func TestSaveDraftValidationError(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodPost, "/api/projects/save", map[string]interface{}{
		"goal_description": "Track stock",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Project name is required"}`, w.Body.String())
}

func TestSubmitEndpoint(t *testing.T) {
	store := &stubStore{saveID: 42, promptID: 7}
	r := newTestRouter(store, &stubLLM{response: "# Plan"}, testUser())

	w := doJSON(t, r, http.MethodPost, "/api/projects/submit", map[string]interface{}{
		"name":             "Inventory System",
		"goal_description": "Track stock",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"message": "Project submitted successfully",
		"project_id": 42,
		"prompt_id": 7,
		"llm_response": "# Plan"
	}`, w.Body.String())
}

func TestSubmitLLMFailure(t *testing.T) {
	store := &stubStore{saveID: 42}
	r := newTestRouter(store, &stubLLM{err: assert.AnError}, testUser())

	w := doJSON(t, r, http.MethodPost, "/api/projects/submit", map[string]interface{}{
		"name":             "Inventory System",
		"goal_description": "Track stock",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Plan generation failed"}`, w.Body.String())
}

func TestSubmitForbidden(t *testing.T) {
	store := &stubStore{saveErr: domain.ErrForbidden}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodPost, "/api/projects/submit", map[string]interface{}{
		"id":               42,
		"name":             "Inventory System",
		"goal_description": "Track stock",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListByUserEndpoint(t *testing.T) {
	store := &stubStore{projects: []domain.Project{
		{ID: 2, Name: "Second", Status: "submitted", OwnerID: 9},
		{ID: 1, Name: "First", Status: "draft", OwnerID: 9},
	}}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodGet, "/api/projects/user/9", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Projects []projectSummary `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projects, 2)
	assert.Equal(t, "Second", resp.Projects[0].Name)
}

func TestListByUserRejectsOtherUsers(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodGet, "/api/projects/user/2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDetailEndpoint(t *testing.T) {
	store := &stubStore{detailRows: []repository.DetailRow{{
		ProjectID: 42,
		Name:      "Rollout",
		Status:    domain.StatusDraft,
		OwnerID:   9,
	}}}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodGet, "/api/projects/42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Project detailResponse `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Project.ID)
	assert.Equal(t, "Rollout", resp.Project.Name)
	assert.NotNil(t, resp.Project.TeamMembers)
	assert.Nil(t, resp.Project.BudgetFloor)
}

func TestDetailNotFound(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodGet, "/api/projects/404", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func TestDeleteEndpoint(t *testing.T) {
	store := &stubStore{owner: 9, deleted: true}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodDelete, "/api/projects/42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project deleted"}`, w.Body.String())
}

func TestDeleteForeignProject(t *testing.T) {
	store := &stubStore{owner: 2}
	r := newTestRouter(store, &stubLLM{}, testUser())

	w := doJSON(t, r, http.MethodDelete, "/api/projects/42", nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"You do not have permission to modify this project"}`, w.Body.String())
}
