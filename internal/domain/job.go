package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrReferenceNotFound is returned by writes whose parent record is missing
	// or owned by another user.
	ErrReferenceNotFound = errors.New("referenced resource not found")
)

// Job is a posting the user is tracking. Owned directly by a User.
type Job struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"owner_id"`
	Company      string         `json:"company"`
	Position     string         `json:"position"`
	Location     *string        `json:"location,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	Status       PipelineStatus `json:"status"`
	SalaryMin    *float64       `json:"salary_min,omitempty"`
	SalaryMax    *float64       `json:"salary_max,omitempty"`
	JobURL       *string        `json:"job_url,omitempty"`
	ContactName  *string        `json:"contact_name,omitempty"`
	ContactEmail *string        `json:"contact_email,omitempty"`
	ContactPhone *string        `json:"contact_phone,omitempty"`
	AppliedAt    time.Time      `json:"applied_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// JobInput is the create/update payload for a Job.
type JobInput struct {
	Company      string   `json:"company" validate:"required,max=200"`
	Position     string   `json:"position" validate:"required,max=200"`
	Location     *string  `json:"location" validate:"omitempty,max=200"`
	Notes        *string  `json:"notes" validate:"omitempty,max=10000"`
	Status       string   `json:"status"`
	SalaryMin    *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax    *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	JobURL       *string  `json:"job_url" validate:"omitempty,url"`
	ContactName  *string  `json:"contact_name" validate:"omitempty,max=200,no_emoji"`
	ContactEmail *string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone" validate:"omitempty,valid_phone"`
	AppliedAt    string   `json:"applied_at"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	// ListByOwner returns the owner's jobs, most recently applied first.
	ListByOwner(ctx context.Context, ownerID string) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	// Delete removes the job and its interviews in one transaction.
	Delete(ctx context.Context, id, ownerID string) error
	CountByStatus(ctx context.Context, ownerID string) (map[PipelineStatus]int, error)
}

type JobUsecase interface {
	ListJobs(ctx context.Context, callerID string) ([]Job, error)
	GetJob(ctx context.Context, id, callerID string) (*Job, error)
	CreateJob(ctx context.Context, callerID string, input JobInput) (*Job, error)
	UpdateJob(ctx context.Context, id, callerID string, input JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id, callerID string) error
	ListJobInterviews(ctx context.Context, id, callerID string) ([]Interview, error)
}
