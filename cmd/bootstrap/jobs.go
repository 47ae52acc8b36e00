package bootstrap

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/worker"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewCompleter,
	),
	fx.Invoke(func(*worker.Completer) {}),
)

func NewCompleter(lc fx.Lifecycle, cfg config.Config, booking commands.BookingCommands) *worker.Completer {
	completer := worker.NewCompleter(booking, cfg.Jobs.CompleterSchedule)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return completer.Start()
		},
		OnStop: func(_ context.Context) error {
			completer.Stop()
			return nil
		},
	})

	return completer
}
