package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"zenpeople/internal/config"
	"zenpeople/internal/delivery/http/handler"
	"zenpeople/internal/delivery/http/middleware"
)

type Router struct {
	app            *fiber.App
	config         *config.Config
	limiter        middleware.Limiter
	healthHandler  *handler.HealthHandler
	oauthHandler   *handler.OAuthHandler
	syncHandler    *handler.SyncHandler
	webhookHandler *handler.WebhookHandler
	formHandler    *handler.FormHandler
}

func NewRouter(
	cfg *config.Config,
	limiter middleware.Limiter,
	healthHandler *handler.HealthHandler,
	oauthHandler *handler.OAuthHandler,
	syncHandler *handler.SyncHandler,
	webhookHandler *handler.WebhookHandler,
	formHandler *handler.FormHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:            app,
		config:         cfg,
		limiter:        limiter,
		healthHandler:  healthHandler,
		oauthHandler:   oauthHandler,
		syncHandler:    syncHandler,
		webhookHandler: webhookHandler,
		formHandler:    formHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.config.App.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// OAuth routes (at root level for the provider redirect)
	r.app.Get("/authorize", r.oauthHandler.Authorize)
	r.app.Get("/callback", r.oauthHandler.Callback)

	// Webhook routes (at root level for external callbacks)
	r.app.Post("/webhook/jobadder", r.webhookHandler.JobAdderCallback)
	r.app.Post("/webhook/sanity", r.webhookHandler.SanityCallback)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		api.Post("/sync", r.syncHandler.TriggerSync)

		// Public form routes, rate limited per client IP
		window := time.Duration(r.config.RateLimit.WindowSeconds) * time.Second
		forms := api.Group("/forms",
			middleware.RateLimit(r.limiter, r.config.RateLimit.Requests, window),
		)
		{
			forms.Post("/contact", r.formHandler.Contact)
			forms.Post("/quote", r.formHandler.Quote)
			forms.Post("/resume", r.formHandler.Resume)
			forms.Post("/application", r.formHandler.Application)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
