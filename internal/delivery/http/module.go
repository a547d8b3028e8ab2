package http

import (
	"go.uber.org/fx"

	"zenpeople/internal/delivery/http/handler"
	"zenpeople/internal/delivery/http/middleware"
	"zenpeople/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		middleware.NewRedisLimiter,
		newLimiter,
		handler.NewHealthHandler,
		handler.NewOAuthHandler,
		handler.NewSyncHandler,
		handler.NewWebhookHandler,
		handler.NewFormHandler,
		router.NewRouter,
	),
)

func newLimiter(redisLimiter *middleware.RedisLimiter) middleware.Limiter {
	if redisLimiter != nil {
		return redisLimiter
	}
	return middleware.NewMemoryLimiter()
}
