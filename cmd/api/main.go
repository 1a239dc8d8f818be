package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jenga-25-26J/jenga-backend/config"
	"github.com/jenga-25-26J/jenga-backend/internal/bootstrap"
	"github.com/jenga-25-26J/jenga-backend/internal/db"
	"github.com/jenga-25-26J/jenga-backend/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg.Database.DSN())
	if err != nil {
		zl.Fatal("database connect failed", "error", err)
	}
	defer database.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	r := bootstrap.BuildRouter(cfg, database.SQL, rdb, zl)

	zl.Info("starting server", "port", cfg.Server.Port, "env", cfg.App.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zl.Fatal("server stopped", "error", err)
	}
}
