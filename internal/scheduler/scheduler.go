package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/usecase"
)

// Scheduler runs a full job synchronisation on a cron schedule so the
// document store converges even when webhook deliveries are missed.
type Scheduler struct {
	cron       *cron.Cron
	sync       usecase.SyncUsecase
	spec       string
	runOnStart bool
	logger     *zap.Logger
}

func NewScheduler(cfg *config.Config, syncUsecase usecase.SyncUsecase, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		sync:       syncUsecase,
		spec:       cfg.Sync.Schedule,
		runOnStart: cfg.Sync.RunOnStart,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec == "" {
		s.logger.Info("Sync schedule not configured, scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSync(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to register sync schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("Sync scheduler started", zap.String("schedule", s.spec))

	if s.runOnStart {
		go s.runSync(context.Background())
	}

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("Sync scheduler stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	s.logger.Info("Scheduled sync started")

	result, err := s.sync.SyncAll(ctx)
	if err != nil {
		s.logger.Error("Scheduled sync failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled sync complete",
		zap.Int("synced", result.Synced),
		zap.Int("removed", result.Removed),
	)
}
