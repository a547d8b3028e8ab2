package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
)

// Enqueuer puts webhook-triggered work on the task queue.
type Enqueuer interface {
	EnqueueSyncAd(ctx context.Context, adID int) error
	EnqueueRemoveAd(ctx context.Context, adID int) error
	EnqueueForwardApplication(ctx context.Context, doc *entity.SanityWebhookDoc) error
	Close() error
}

type enqueuer struct {
	client   *asynq.Client
	maxRetry int
	logger   *zap.Logger
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

func NewEnqueuer(cfg *config.Config, logger *zap.Logger) Enqueuer {
	return &enqueuer{
		client:   asynq.NewClient(redisOpt(cfg)),
		maxRetry: cfg.Queue.MaxRetry,
		logger:   logger,
	}
}

func (e *enqueuer) enqueue(ctx context.Context, taskType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(taskType, body)
	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueName),
		asynq.MaxRetry(e.maxRetry),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}

	e.logger.Info("Task enqueued",
		zap.String("type", taskType),
		zap.String("task_id", info.ID),
	)

	return nil
}

func (e *enqueuer) EnqueueSyncAd(ctx context.Context, adID int) error {
	return e.enqueue(ctx, TaskTypeSyncAd, SyncAdPayload{AdID: adID})
}

func (e *enqueuer) EnqueueRemoveAd(ctx context.Context, adID int) error {
	return e.enqueue(ctx, TaskTypeRemoveAd, SyncAdPayload{AdID: adID})
}

func (e *enqueuer) EnqueueForwardApplication(ctx context.Context, doc *entity.SanityWebhookDoc) error {
	return e.enqueue(ctx, TaskTypeForwardApplication, ForwardApplicationPayload{Document: *doc})
}

func (e *enqueuer) Close() error {
	return e.client.Close()
}
