package bootstrap

import (
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.MailConfig { return cfg.Mail },
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
	),
)
