package usecase

import (
	"context"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/dateutil"
)

// UpcomingInterviewLimit caps the interviews listed on the dashboard.
const UpcomingInterviewLimit = 5

type dashboardUsecase struct {
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	interviewRepo   domain.InterviewRepository
	now             func() time.Time
}

func NewDashboardUsecase(
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
	interviewRepo domain.InterviewRepository,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		interviewRepo:   interviewRepo,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) Summary(ctx context.Context, callerID string) (*domain.Dashboard, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.CountByStatus(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	apps, err := u.applicationRepo.CountByStatus(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}

	// "today" is the caller's today, so an interview at local midnight still counts.
	from := dateutil.StartOfDay(u.now(), dateutil.LocationFrom(ctx))
	upcoming, err := u.interviewRepo.ListUpcoming(ctx, callerID, from, UpcomingInterviewLimit)
	if err != nil {
		return nil, storageError(err)
	}

	d := &domain.Dashboard{
		JobsByStatus:         fillStatuses(jobs),
		ApplicationsByStatus: fillStatuses(apps),
		UpcomingInterviews:   localizeInterviews(ctx, upcoming),
	}
	for _, n := range d.JobsByStatus {
		d.TotalJobs += n
	}
	for _, n := range d.ApplicationsByStatus {
		d.TotalApplications += n
	}
	return d, nil
}

// fillStatuses reports every status, including those with no records.
func fillStatuses(counts map[domain.PipelineStatus]int) map[domain.PipelineStatus]int {
	out := make(map[domain.PipelineStatus]int, len(domain.AllPipelineStatuses))
	for _, s := range domain.AllPipelineStatuses {
		out[s] = counts[s]
	}
	return out
}
