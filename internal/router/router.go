package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/pygus/pygus-backend/internal/config"
	"github.com/pygus/pygus-backend/internal/handler"    // handlers implement the endpoint logic
	"github.com/pygus/pygus-backend/internal/middleware" // middleware for rate limiting, caching and the token guard
)

// Register wires every route of the API onto the provided Echo instance.
//
// The task listing endpoints sit behind the Redis response cache; all routes
// share the distributed rate limiter. Task mutations and uploads are gated by
// the bearer-token guard unless TASK_GUARD_ENABLED is switched off.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, users *handler.UserHandler,
	tasks *handler.TaskHandler, uploads *handler.UploadHandler) {

	// Health endpoint for load balancers; registered before any middleware
	// so probes are never rate limited.
	e.GET("/healthz", handler.Health)

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	a := e.Group("/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.POST("/login-admin", auth.LoginAdmin)

	u := e.Group("/users")
	u.POST("", users.Create)
	u.GET("", users.ReadAll)
	u.GET("/:id", users.ReadOne)
	u.PUT("/:id", users.Update)
	u.DELETE("/:id", users.Delete)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	var guard []echo.MiddlewareFunc
	if cfg.TaskGuardOn {
		guard = append(guard, middleware.TokenGuard(cfg.JWTSecret))
	}

	t := e.Group("/tasks")
	t.GET("", tasks.ReadAll, cache)
	t.GET("/backoffice", tasks.ReadBackoffice, cache)
	t.GET("/:id", tasks.ReadOne)
	t.POST("", tasks.Create, guard...)
	t.PUT("/:id", tasks.Update, guard...)
	t.DELETE("/:id", tasks.Delete, guard...)
	t.POST("/upload/image", uploads.Image, guard...)
	t.POST("/upload/audio", uploads.Audio, guard...)
	t.POST("/upload/audios", uploads.Audios, guard...)
}
