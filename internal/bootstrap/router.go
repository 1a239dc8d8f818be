package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/jenga-25-26J/jenga-backend/config"
	apihttp "github.com/jenga-25-26J/jenga-backend/internal/api/http"
	apimw "github.com/jenga-25-26J/jenga-backend/internal/api/http/middleware"
	authhttp "github.com/jenga-25-26J/jenga-backend/internal/auth/http"
	authmw "github.com/jenga-25-26J/jenga-backend/internal/auth/middleware"
	authrepo "github.com/jenga-25-26J/jenga-backend/internal/auth/repository"
	authsvc "github.com/jenga-25-26J/jenga-backend/internal/auth/service"
	"github.com/jenga-25-26J/jenga-backend/internal/auth/token"
	"github.com/jenga-25-26J/jenga-backend/internal/llm"
	"github.com/jenga-25-26J/jenga-backend/internal/platform/logger"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/cache"
	projecthttp "github.com/jenga-25-26J/jenga-backend/internal/projects/http"
	projectrepo "github.com/jenga-25-26J/jenga-backend/internal/projects/repository"
	projectsvc "github.com/jenga-25-26J/jenga-backend/internal/projects/service"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/validation"
)

// BuildRouter wires repositories, services and handlers into a gin
// engine. The caller owns the db and redis connections.
func BuildRouter(cfg *config.Config, db *sql.DB, rdb *redis.Client, log *logger.Logger) *gin.Engine {
	setGinMode(cfg.App.Environment)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	health := apihttp.NewHealthHandler(db)
	health.Register(r)
	health.Register(api)

	tokens := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	users := authrepo.NewUserRepository(db)
	authService := authsvc.NewAuthService(users, tokens)

	store := projectrepo.NewAggregateRepository(db)
	policy := validation.NewPolicy(cfg.Policy.Security, cfg.Policy.Topics)
	gemini := llm.NewGemini(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	generations := cache.NewGenerationCache(rdb, cfg.Redis.TTL)
	projectService := projectsvc.NewProjectService(store, gemini, generations, policy, log)

	authenticated := authmw.RequireAuth(tokens, users)
	loginLimiter := apimw.NewRateLimiter(rate.Limit(1), 5).Middleware()

	authhttp.NewHandler(authService, log).Register(api, authenticated, loginLimiter)
	projecthttp.NewHandler(projectService, log).Register(api, authenticated)

	return r
}
