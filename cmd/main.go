package main

import (
	"go.uber.org/fx"

	"zenpeople/internal/config"
	deliveryhttp "zenpeople/internal/delivery/http"
	"zenpeople/internal/infrastructure/database"
	"zenpeople/internal/infrastructure/jobadder"
	"zenpeople/internal/infrastructure/logger"
	"zenpeople/internal/infrastructure/mailer"
	"zenpeople/internal/infrastructure/redis"
	"zenpeople/internal/infrastructure/repository"
	"zenpeople/internal/infrastructure/sanity"
	"zenpeople/internal/infrastructure/turnstile"
	"zenpeople/internal/queue"
	"zenpeople/internal/scheduler"
	"zenpeople/internal/server"
	"zenpeople/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		repository.Module,
		jobadder.Module,
		sanity.Module,
		mailer.Module,
		turnstile.Module,

		// Business logic
		usecase.Module,

		// Background processing
		queue.Module,
		scheduler.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
