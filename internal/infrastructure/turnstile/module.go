package turnstile

import "go.uber.org/fx"

var Module = fx.Module("turnstile",
	fx.Provide(NewVerifier),
)
