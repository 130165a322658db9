package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, now: time.Now}
}

// EnsureUser records the token subject on first sight. It is idempotent and
// only rewrites the row when the email claim changed.
func (u *authUsecase) EnsureUser(ctx context.Context, id, email string) (*domain.User, error) {
	if err := requireCaller(id); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	existing, err := u.userRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, storageError(err)
	}
	if existing != nil && (email == "" || existing.Email == email) {
		return existing, nil
	}

	now := u.now()
	user := &domain.User{ID: id, Email: email, CreatedAt: now, UpdatedAt: now}
	if existing != nil {
		user.CreatedAt = existing.CreatedAt
	}
	if err := u.userRepo.Upsert(ctx, user); err != nil {
		return nil, storageError(err)
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if err := requireCaller(id); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, storageError(err)
	}
	return user, nil
}
