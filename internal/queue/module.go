package queue

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("queue",
	fx.Provide(NewEnqueuer),
	fx.Provide(NewWorker),
	fx.Invoke(registerWorker),
)

func registerWorker(lc fx.Lifecycle, worker *Worker, enqueuer Enqueuer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return worker.Start()
		},
		OnStop: func(ctx context.Context) error {
			worker.Shutdown()
			return enqueuer.Close()
		},
	})
}
