package repository

import (
	"context"
	"errors"
	"fmt"

	"careerprep/internal/domain"
	"careerprep/internal/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Create(ctx context.Context, u *domain.User) error {
	if r.pool == nil {
		return errors.New("users db not available")
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, email, display_name, password_hash, email_confirmed, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash, u.EmailConfirmed, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shared.ErrAlreadyRegistered
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.pool == nil {
		return nil, errors.New("users db not available")
	}
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT id, email, display_name, password_hash, email_confirmed, created_at
		FROM users WHERE email = $1`, email))
}

func (r *UsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.pool == nil {
		return nil, errors.New("users db not available")
	}
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT id, email, display_name, password_hash, email_confirmed, created_at
		FROM users WHERE id = $1`, id))
}

func (r *UsersRepo) scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.EmailConfirmed, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
