package repository

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*commands.UserSnapshot, string, error) {
	const query = `
		SELECT id, email, role, password_hash
		FROM users
		WHERE email = $1`

	var user commands.UserSnapshot
	var hash string
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Role, &hash)
	if err != nil {
		return nil, "", wrapPgErr("failed to find user by email", err)
	}
	return &user, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	const query = `
		SELECT id, email, role
		FROM users
		WHERE id = $1`

	var user commands.UserSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.Role)
	if err != nil {
		return nil, wrapPgErr("failed to find user by id", err)
	}
	return &user, nil
}
