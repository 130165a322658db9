package memory

import (
	"context"

	"go-jobtracker-backend/internal/domain"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}
