package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

const pgUniqueViolation = "23505"

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// FindByUsername matches the username exactly; admin usernames are case sensitive.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (model.AdminIdentity, error) {
	var a model.AdminIdentity
	var role string
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, COALESCE(email, ''), password_hash, role, last_login, created_at, updated_at
		 FROM admin_users WHERE username = $1`, username).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AdminIdentity{}, model.ErrIdentityNotFound
	}
	if err != nil {
		return model.AdminIdentity{}, fmt.Errorf("find admin by username: %w", err)
	}
	a.Role = model.Role(role)
	return a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a model.AdminIdentity) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_users (id, username, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`,
		a.ID, a.Username, a.Email, a.PasswordHash, string(a.Role), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrIdentityExists
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Save(ctx context.Context, a model.AdminIdentity) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admin_users
		 SET email = NULLIF($2, ''), role = $3, last_login = $4, updated_at = $5
		 WHERE username = $1`,
		a.Username, a.Email, string(a.Role), a.LastLogin, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIdentityNotFound
	}
	return nil
}
