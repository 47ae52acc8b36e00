package commands

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/jwt"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/password"

	"github.com/google/uuid"
)

type UserSnapshot struct {
	ID    uuid.UUID
	Email string
	Role  string
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserSnapshot, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type LoginResult struct {
	AccessToken string
	User        UserSnapshot
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	users UserRepository
	jwt   *jwt.Service
}

func NewAuthCommands(users UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{users: users, jwt: jwtService}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	user, hash, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and bad password.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(hash, rawPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign access token")
	}

	return &LoginResult{AccessToken: token, User: *user}, nil
}
