package domain

import (
	"context"
	"time"
)

// Interview belongs to a Job and is owned through that job's owner.
type Interview struct {
	ID        string          `json:"id"`
	JobID     string          `json:"job_id"`
	Date      time.Time       `json:"date"`
	DateLocal string          `json:"date_local,omitempty"`
	Time      *string         `json:"time,omitempty"`
	Type      InterviewType   `json:"type"`
	Location  *string         `json:"location,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Duration  *int            `json:"duration,omitempty"`
	Round     int             `json:"round"`
	Status    InterviewStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// OwnerID is read from the parent job; interviews have no owner column.
	OwnerID string      `json:"-"`
	Job     *JobSummary `json:"job,omitempty"`
}

// JobSummary is the slice of the parent job shown alongside interviews.
type JobSummary struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Position string `json:"position"`
}

type InterviewInput struct {
	JobID    string  `json:"job_id" validate:"required"`
	Date     string  `json:"date" validate:"required"`
	Time     *string `json:"time" validate:"omitempty,clock_time"`
	Type     string  `json:"type" validate:"required"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Notes    *string `json:"notes" validate:"omitempty,max=10000"`
	Duration *int    `json:"duration"`
	Round    *int    `json:"round"`
	Status   string  `json:"status"`
}

type InterviewRepository interface {
	// GetByID returns the interview with OwnerID filled from its job.
	GetByID(ctx context.Context, id string) (*Interview, error)
	// ListByOwner returns interviews of all the owner's jobs, earliest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Interview, error)
	ListByJob(ctx context.Context, jobID string) ([]Interview, error)
	// CreateForOwner inserts only if interview.JobID names a job owned by
	// ownerID, checked in the same statement; otherwise ErrReferenceNotFound.
	CreateForOwner(ctx context.Context, ownerID string, interview *Interview) error
	// UpdateForOwner applies the same parent check as CreateForOwner to both
	// the current and the new job.
	UpdateForOwner(ctx context.Context, ownerID string, interview *Interview) error
	Delete(ctx context.Context, id, ownerID string) error
	ListUpcoming(ctx context.Context, ownerID string, from time.Time, limit int) ([]Interview, error)
}

type InterviewUsecase interface {
	ListInterviews(ctx context.Context, callerID string) ([]Interview, error)
	GetInterview(ctx context.Context, id, callerID string) (*Interview, error)
	CreateInterview(ctx context.Context, callerID string, input InterviewInput) (*Interview, error)
	UpdateInterview(ctx context.Context, id, callerID string, input InterviewInput) (*Interview, error)
	DeleteInterview(ctx context.Context, id, callerID string) error
}
