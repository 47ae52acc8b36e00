package commands

import (
	"context"
	"strings"

	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// ResourceAdminRepository is the owner-side CRUD store for the resource
// pool. Deleting a resource never touches existing appointments; orphaned
// resource ids are tolerated on read paths.
type ResourceAdminRepository interface {
	Create(ctx context.Context, businessID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error)
	Update(ctx context.Context, businessID, resourceID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error)
	Delete(ctx context.Context, businessID, resourceID uuid.UUID) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]shared.ResourceSnapshot, error)
}

var ErrResourceNameRequired = errs.New("resource name is required")

type ResourceCommands interface {
	CreateResource(ctx context.Context, ownerID, businessID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error)
	UpdateResource(ctx context.Context, ownerID, businessID, resourceID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error)
	DeleteResource(ctx context.Context, ownerID, businessID, resourceID uuid.UUID) error
	ListResources(ctx context.Context, ownerID, businessID uuid.UUID) ([]shared.ResourceSnapshot, error)
}

type resourceCommandsImpl struct {
	resources ResourceAdminRepository
	reads     shared.CommandReads
}

func NewResourceCommands(resources ResourceAdminRepository, reads shared.CommandReads) ResourceCommands {
	return &resourceCommandsImpl{resources: resources, reads: reads}
}

func (r *resourceCommandsImpl) CreateResource(ctx context.Context, ownerID, businessID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error) {
	if err := r.requireOwner(ctx, businessID, ownerID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrResourceNameRequired
	}

	res, err := r.resources.Create(ctx, businessID, name, strings.TrimSpace(resourceType))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (r *resourceCommandsImpl) UpdateResource(ctx context.Context, ownerID, businessID, resourceID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error) {
	if err := r.requireOwner(ctx, businessID, ownerID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrResourceNameRequired
	}

	res, err := r.resources.Update(ctx, businessID, resourceID, name, strings.TrimSpace(resourceType))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (r *resourceCommandsImpl) DeleteResource(ctx context.Context, ownerID, businessID, resourceID uuid.UUID) error {
	if err := r.requireOwner(ctx, businessID, ownerID); err != nil {
		return err
	}
	if err := r.resources.Delete(ctx, businessID, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrResourceNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (r *resourceCommandsImpl) ListResources(ctx context.Context, ownerID, businessID uuid.UUID) ([]shared.ResourceSnapshot, error) {
	if err := r.requireOwner(ctx, businessID, ownerID); err != nil {
		return nil, err
	}
	return r.resources.ListByBusiness(ctx, businessID)
}

func (r *resourceCommandsImpl) requireOwner(ctx context.Context, businessID, ownerID uuid.UUID) error {
	business, err := r.reads.BusinessByID(ctx, businessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBusinessNotFound
		}
		return err
	}
	if business.OwnerID != ownerID {
		return errs.ErrNotOwner
	}
	return nil
}
