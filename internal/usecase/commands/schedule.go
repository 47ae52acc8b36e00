package commands

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// RuleRepository is the owner-side store for weekly availability windows.
// Rules are deleted independently of appointments; there is no cascade.
type RuleRepository interface {
	Create(ctx context.Context, rule *schedule.Rule) error
	ListByBusinessCategory(ctx context.Context, businessID uuid.UUID, categoryID *uuid.UUID) ([]shared.RuleSnapshot, error)
	Delete(ctx context.Context, businessID, ruleID uuid.UUID) error
}

// CategoryMembership verifies that a category is associated with a business
// before an availability window may target it.
type CategoryMembership interface {
	CategoryBelongsToBusiness(ctx context.Context, businessID, categoryID uuid.UUID) (bool, error)
}

type CreateRuleParams struct {
	BusinessID          uuid.UUID
	CategoryID          uuid.UUID
	Weekday             int
	StartTime           string
	EndTime             string
	SlotDurationMinutes int
}

type ScheduleCommands interface {
	CreateRule(ctx context.Context, ownerID uuid.UUID, params CreateRuleParams) (*schedule.Rule, error)
	ListRules(ctx context.Context, ownerID, businessID uuid.UUID, categoryID *uuid.UUID) ([]shared.RuleSnapshot, error)
	DeleteRule(ctx context.Context, ownerID, businessID, ruleID uuid.UUID) error
}

type scheduleCommandsImpl struct {
	rules      RuleRepository
	membership CategoryMembership
	reads      shared.CommandReads
}

func NewScheduleCommands(rules RuleRepository, membership CategoryMembership, reads shared.CommandReads) ScheduleCommands {
	return &scheduleCommandsImpl{
		rules:      rules,
		membership: membership,
		reads:      reads,
	}
}

func (s *scheduleCommandsImpl) CreateRule(ctx context.Context, ownerID uuid.UUID, params CreateRuleParams) (*schedule.Rule, error) {
	if err := s.requireOwner(ctx, params.BusinessID, ownerID); err != nil {
		return nil, err
	}

	if _, err := s.reads.CategoryByID(ctx, params.CategoryID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, err
	}
	belongs, err := s.membership.CategoryBelongsToBusiness(ctx, params.BusinessID, params.CategoryID)
	if err != nil {
		return nil, err
	}
	if !belongs {
		return nil, errs.ErrCategoryNotFound
	}

	rule, err := schedule.NewRule(
		params.BusinessID, params.CategoryID,
		params.Weekday, params.StartTime, params.EndTime,
		params.SlotDurationMinutes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rule, nil
}

func (s *scheduleCommandsImpl) ListRules(ctx context.Context, ownerID, businessID uuid.UUID, categoryID *uuid.UUID) ([]shared.RuleSnapshot, error) {
	if err := s.requireOwner(ctx, businessID, ownerID); err != nil {
		return nil, err
	}
	return s.rules.ListByBusinessCategory(ctx, businessID, categoryID)
}

func (s *scheduleCommandsImpl) DeleteRule(ctx context.Context, ownerID, businessID, ruleID uuid.UUID) error {
	if err := s.requireOwner(ctx, businessID, ownerID); err != nil {
		return err
	}
	if err := s.rules.Delete(ctx, businessID, ruleID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrRuleNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *scheduleCommandsImpl) requireOwner(ctx context.Context, businessID, ownerID uuid.UUID) error {
	business, err := s.reads.BusinessByID(ctx, businessID)
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
