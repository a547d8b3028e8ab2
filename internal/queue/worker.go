package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/usecase"
)

// Worker consumes queued sync and application tasks. Tasks that exhaust
// their retries are kept by asynq in the archived set for inspection.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(
	cfg *config.Config,
	syncUsecase usecase.SyncUsecase,
	applicationUsecase usecase.ApplicationUsecase,
	logger *zap.Logger,
) *Worker {
	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: cfg.Queue.Concurrency,
		Queues: map[string]int{
			QueueName: 1,
		},
		Logger: &asynqLogger{logger: logger.Sugar()},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		logger: logger,
	}

	w.mux.HandleFunc(TaskTypeSyncAd, func(ctx context.Context, task *asynq.Task) error {
		var payload SyncAdPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal sync payload: %w", err)
		}
		return syncUsecase.SyncOne(ctx, payload.AdID)
	})

	w.mux.HandleFunc(TaskTypeRemoveAd, func(ctx context.Context, task *asynq.Task) error {
		var payload SyncAdPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal remove payload: %w", err)
		}
		return syncUsecase.RemoveOne(ctx, payload.AdID)
	})

	w.mux.HandleFunc(TaskTypeForwardApplication, func(ctx context.Context, task *asynq.Task) error {
		var payload ForwardApplicationPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal application payload: %w", err)
		}
		return applicationUsecase.Forward(ctx, &payload.Document)
	})

	return w
}

func (w *Worker) Start() error {
	w.logger.Info("Starting queue worker")
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.logger.Info("Stopping queue worker")
	w.server.Shutdown()
}

// asynqLogger adapts zap to asynq's logging interface.
type asynqLogger struct {
	logger *zap.SugaredLogger
}

func (l *asynqLogger) Debug(args ...interface{}) { l.logger.Debug(args...) }
func (l *asynqLogger) Info(args ...interface{})  { l.logger.Info(args...) }
func (l *asynqLogger) Warn(args ...interface{})  { l.logger.Warn(args...) }
func (l *asynqLogger) Error(args ...interface{}) { l.logger.Error(args...) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal(args...) }
