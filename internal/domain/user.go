package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"` // token subject
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	// Upsert creates the user on first sign-in and refreshes the email afterwards.
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}

type AuthUsecase interface {
	EnsureUser(ctx context.Context, id, email string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
