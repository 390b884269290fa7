package main // Entry point package

import (
	"context"
	"log" // Logging library

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/pygus/pygus-backend/internal/config" // Internal config loader
	"github.com/pygus/pygus-backend/internal/database"
	"github.com/pygus/pygus-backend/internal/handler"
	"github.com/pygus/pygus-backend/internal/queue"
	"github.com/pygus/pygus-backend/internal/repository"
	"github.com/pygus/pygus-backend/internal/router"
	"github.com/pygus/pygus-backend/internal/service"
	"github.com/pygus/pygus-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// One pool for the process lifetime; handlers never open connections.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	assets, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limit disabled")
	}

	userRepo := repository.NewUserRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	assembler := service.NewTaskAssembler(assets)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	userHandler := handler.NewUserHandler(cfg, userRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, assembler)
	uploadHandler := handler.NewUploadHandler(assets)

	// Background consumer mirrors task events into logs/task-events.log.
	go queue.StartTaskEventConsumer()

	e := echo.New()
	router.Register(e, cfg, rdb, authHandler, userHandler, taskHandler, uploadHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
