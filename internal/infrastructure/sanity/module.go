package sanity

import "go.uber.org/fx"

var Module = fx.Module("sanity",
	fx.Provide(NewClient),
)
