package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewSyncUsecase),
	fx.Provide(NewApplicationUsecase),
	fx.Provide(NewFormUsecase),
)
