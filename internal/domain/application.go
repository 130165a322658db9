package domain

import (
	"context"
	"time"
)

// Application mirrors Job and may point at one of the owner's contacts.
type Application struct {
	ID                  string         `json:"id"`
	OwnerID             string         `json:"owner_id"`
	Company             string         `json:"company"`
	Position            string         `json:"position"`
	Location            *string        `json:"location,omitempty"`
	Notes               *string        `json:"notes,omitempty"`
	Status              PipelineStatus `json:"status"`
	SalaryMin           *float64       `json:"salary_min,omitempty"`
	SalaryMax           *float64       `json:"salary_max,omitempty"`
	JobURL              *string        `json:"job_url,omitempty"`
	ContactName         *string        `json:"contact_name,omitempty"`
	ContactEmail        *string        `json:"contact_email,omitempty"`
	ContactPhone        *string        `json:"contact_phone,omitempty"`
	ContactID           *string        `json:"contact_id"`
	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	AppliedAt           time.Time      `json:"applied_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

type ApplicationInput struct {
	Company             string   `json:"company" validate:"required,max=200"`
	Position            string   `json:"position" validate:"required,max=200"`
	Location            *string  `json:"location" validate:"omitempty,max=200"`
	Notes               *string  `json:"notes" validate:"omitempty,max=10000"`
	Status              string   `json:"status"`
	SalaryMin           *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax           *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	JobURL              *string  `json:"job_url" validate:"omitempty,url"`
	ContactName         *string  `json:"contact_name" validate:"omitempty,max=200,no_emoji"`
	ContactEmail        *string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone        *string  `json:"contact_phone" validate:"omitempty,valid_phone"`
	ContactID           *string  `json:"contact_id"`
	ApplicationDeadline *string  `json:"application_deadline"`
	AppliedAt           string   `json:"applied_at"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Application, error)
	ListByContact(ctx context.Context, contactID, ownerID string) ([]Application, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id, ownerID string) error
	CountByStatus(ctx context.Context, ownerID string) (map[PipelineStatus]int, error)
}

type ApplicationUsecase interface {
	ListApplications(ctx context.Context, callerID string) ([]Application, error)
	GetApplication(ctx context.Context, id, callerID string) (*Application, error)
	CreateApplication(ctx context.Context, callerID string, input ApplicationInput) (*Application, error)
	UpdateApplication(ctx context.Context, id, callerID string, input ApplicationInput) (*Application, error)
	DeleteApplication(ctx context.Context, id, callerID string) error
}
