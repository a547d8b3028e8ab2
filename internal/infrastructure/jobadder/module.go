package jobadder

import "go.uber.org/fx"

var Module = fx.Module("jobadder",
	fx.Provide(NewClient),
)
