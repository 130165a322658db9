package domain

import "context"

// Dashboard summarises a user's pipeline.
type Dashboard struct {
	JobsByStatus         map[PipelineStatus]int `json:"jobs_by_status"`
	ApplicationsByStatus map[PipelineStatus]int `json:"applications_by_status"`
	TotalJobs            int                    `json:"total_jobs"`
	TotalApplications    int                    `json:"total_applications"`
	UpcomingInterviews   []Interview            `json:"upcoming_interviews"`
}

type DashboardUsecase interface {
	Summary(ctx context.Context, callerID string) (*Dashboard, error)
}

// EntityKind names the owned collections for authorization and error messages.
type EntityKind string

const (
	KindJob         EntityKind = "Job"
	KindApplication EntityKind = "Application"
	KindContact     EntityKind = "Contact"
	KindInterview   EntityKind = "Interview"
)

// AccessAuditor records attempts to reach records owned by another user.
type AccessAuditor interface {
	AccessDenied(ctx context.Context, kind EntityKind, id, callerID string)
}
