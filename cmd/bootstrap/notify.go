package bootstrap

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra/notify"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			notify.NewSendGridMailer,
			fx.As(new(notify.Sender)),
		),
		NewDispatcher,
		func(d *notify.Dispatcher) shared.Notifier { return d },
	),
)

func NewDispatcher(lc fx.Lifecycle, cfg config.Config, sender notify.Sender) *notify.Dispatcher {
	dispatcher := notify.NewDispatcher(sender, cfg.Mail.QueueSize)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})

	return dispatcher
}
