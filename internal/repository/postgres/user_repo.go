package postgres

import (
	"context"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, created_at, updated_at) VALUES ($1, $2, $3, $4)
              ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
              RETURNING created_at`
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.CreatedAt, user.UpdatedAt).Scan(&user.CreatedAt)
	return mapError(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
