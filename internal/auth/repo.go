package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/apiempleados/api-empleados/internal/platform/db"
	"github.com/apiempleados/api-empleados/internal/shared"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// FindByEmail fetches a user by exact email. Missing users yield shared.ErrNotFound.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, email, password_hash, roles, enabled, created_at FROM users WHERE email = $1`
	var (
		user  User
		roles string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &roles, &user.Enabled, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	user.Roles = ParseRoleSet(roles)
	return &user, nil
}

// Create inserts user. A unique violation on email yields shared.ErrDuplicateEmail.
func (r *PGRepository) Create(ctx context.Context, user *User) error {
	const query = `INSERT INTO users (id, email, password_hash, roles, enabled, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Roles.String(), user.Enabled, user.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicateEmail
		}
		return fmt.Errorf("auth: create user: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
