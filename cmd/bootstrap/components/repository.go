package components

import (
	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/infra/readstore"
	repo_impl "github.com/ExactwareSolution/booktimez-app/internal/infra/repository"
	"github.com/ExactwareSolution/booktimez-app/internal/infra/uow"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Transaction boundary for the booking protocol
		uow.NewPostgresUoW,
		NewCommandReads,
		// Write-side repositories
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewRuleRepository,
			fx.As(new(commands.RuleRepository)),
			fx.As(new(commands.CategoryMembership)),
		),
		fx.Annotate(
			repo_impl.NewResourceRepository,
			fx.As(new(commands.ResourceAdminRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewBusinessReadStore,
			fx.As(new(queries.BusinessReadStore)),
		),
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCommandReads exposes the pool-backed snapshot reads used outside
// booking transactions.
func NewCommandReads(u shared.UnitOfWork) shared.CommandReads {
	return u.Reads()
}
