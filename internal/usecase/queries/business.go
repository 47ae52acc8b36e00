package queries

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type BusinessReadStore interface {
	ListCategories(ctx context.Context, businessID uuid.UUID) ([]shared.CategorySnapshot, error)
}

type BusinessQueries interface {
	// PublicProfile resolves a business by slug or id with its bookable
	// categories, for the public booking page.
	PublicProfile(ctx context.Context, businessRef string) (*shared.BusinessSnapshot, []shared.CategorySnapshot, error)
}

type businessQueriesImpl struct {
	reads shared.CommandReads
	store BusinessReadStore
}

func NewBusinessQueries(reads shared.CommandReads, store BusinessReadStore) BusinessQueries {
	return &businessQueriesImpl{reads: reads, store: store}
}

func (q *businessQueriesImpl) PublicProfile(ctx context.Context, businessRef string) (*shared.BusinessSnapshot, []shared.CategorySnapshot, error) {
	business, err := shared.ResolveBusiness(ctx, q.reads, businessRef)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrBusinessNotFound
		}
		return nil, nil, err
	}

	categories, err := q.store.ListCategories(ctx, business.ID)
	if err != nil {
		return nil, nil, err
	}
	return business, categories, nil
}
