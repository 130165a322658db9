package domain

import (
	"context"
	"time"
)

// Contact is a person in the user's job-search network.
type Contact struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	FirstName string    `json:"first_name"`
	LastName  *string   `json:"last_name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	JobTitle  *string   `json:"job_title,omitempty"`
	Company   *string   `json:"company,omitempty"`
	LinkedIn  *string   `json:"linkedin,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactInput struct {
	FirstName string  `json:"first_name" validate:"required,max=100,no_emoji"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100,no_emoji"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,valid_phone"`
	JobTitle  *string `json:"job_title" validate:"omitempty,max=200"`
	Company   *string `json:"company" validate:"omitempty,max=200"`
	LinkedIn  *string `json:"linkedin" validate:"omitempty,url"`
	Notes     *string `json:"notes" validate:"omitempty,max=10000"`
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	// ListByOwner returns the owner's contacts ordered by first name.
	ListByOwner(ctx context.Context, ownerID string) ([]Contact, error)
	Update(ctx context.Context, contact *Contact) error
	// Delete removes the contact and clears contact_id on the owner's
	// applications that referenced it, in one transaction.
	Delete(ctx context.Context, id, ownerID string) error
}

type ContactUsecase interface {
	ListContacts(ctx context.Context, callerID string) ([]Contact, error)
	GetContact(ctx context.Context, id, callerID string) (*Contact, error)
	CreateContact(ctx context.Context, callerID string, input ContactInput) (*Contact, error)
	UpdateContact(ctx context.Context, id, callerID string, input ContactInput) (*Contact, error)
	DeleteContact(ctx context.Context, id, callerID string) error
	ListContactApplications(ctx context.Context, id, callerID string) ([]Application, error)
}
