package components

import (
	"github.com/ExactwareSolution/booktimez-app/internal/handler"
	"github.com/ExactwareSolution/booktimez-app/internal/handler/api"
	"github.com/ExactwareSolution/booktimez-app/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewPublicHandler,
		api.NewScheduleHandler,
		api.NewResourceHandler,
		api.NewAppointmentHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRedisRateLimiter,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	public *api.PublicHandler,
	schedule *api.ScheduleHandler,
	resource *api.ResourceHandler,
	appointment *api.AppointmentHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Public:      public,
		Schedule:    schedule,
		Resource:    resource,
		Appointment: appointment,
	}
}
