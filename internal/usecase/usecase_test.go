package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/repository/memory"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/dateutil"
	"go-jobtracker-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	alice = "user-a"
	bob   = "user-b"
)

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) AccessDenied(ctx context.Context, kind domain.EntityKind, id, callerID string) {
	m.Called(ctx, kind, id, callerID)
}

// MockJobRepo stands in for a failing database.
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}
func (m *MockJobRepo) CountByStatus(ctx context.Context, ownerID string) (map[domain.PipelineStatus]int, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.PipelineStatus]int), args.Error(1)
}

type fixture struct {
	store        *memory.Store
	auditor      *MockAuditor
	jobs         domain.JobUsecase
	applications domain.ApplicationUsecase
	contacts     domain.ContactUsecase
	interviews   domain.InterviewUsecase
	dashboard    domain.DashboardUsecase
}

func newFixture(t *testing.T, enforceContactOwnership bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	auditor := new(MockAuditor)
	auditor.On("AccessDenied", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()

	guard := usecase.NewOwnershipGuard(store.Jobs(), store.Applications(), store.Contacts(), store.Interviews(), auditor)
	refs := usecase.NewReferenceChecker(guard)
	v := validation.New()

	return &fixture{
		store:        store,
		auditor:      auditor,
		jobs:         usecase.NewJobUsecase(store.Jobs(), store.Interviews(), guard, v),
		applications: usecase.NewApplicationUsecase(store.Applications(), guard, refs, v, enforceContactOwnership),
		contacts:     usecase.NewContactUsecase(store.Contacts(), store.Applications(), guard, v),
		interviews:   usecase.NewInterviewUsecase(store.Interviews(), guard, refs, v),
		dashboard:    usecase.NewDashboardUsecase(store.Jobs(), store.Applications(), store.Interviews()),
	}
}

func (f *fixture) job(t *testing.T, owner, company, appliedAt string) *domain.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), owner, domain.JobInput{
		Company:   company,
		Position:  "Engineer",
		AppliedAt: appliedAt,
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) interview(t *testing.T, owner, jobID, date string) *domain.Interview {
	t.Helper()
	iv, err := f.interviews.CreateInterview(context.Background(), owner, domain.InterviewInput{
		JobID: jobID,
		Date:  date,
		Type:  "PHONE",
	})
	require.NoError(t, err)
	return iv
}

func strPtr(s string) *string { return &s }

func TestJobStatusWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	t.Run("Create defaults to WISHLIST and sets applied_at", func(t *testing.T) {
		before := time.Now()
		job, err := f.jobs.CreateJob(ctx, alice, domain.JobInput{Company: "Acme", Position: "Engineer"})
		require.NoError(t, err)
		assert.Equal(t, domain.PipelineWishlist, job.Status)
		assert.False(t, job.AppliedAt.Before(before))
		assert.Equal(t, alice, job.OwnerID)
	})

	t.Run("Unknown status is rejected and the record is unchanged", func(t *testing.T) {
		job, err := f.jobs.CreateJob(ctx, alice, domain.JobInput{Company: "Acme", Position: "Engineer", Status: "WISHLIST"})
		require.NoError(t, err)

		_, err = f.jobs.UpdateJob(ctx, job.ID, alice, domain.JobInput{Company: "Acme", Position: "Engineer", Status: "OFFERED"})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "status", appErr.Field)

		stored, err := f.jobs.GetJob(ctx, job.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.PipelineWishlist, stored.Status)
	})

	t.Run("Any status may follow any other", func(t *testing.T) {
		job := f.job(t, alice, "Globex", "")
		for _, s := range []string{"REJECTED", "OFFER", "WISHLIST", "ACCEPTED", "APPLIED"} {
			updated, err := f.jobs.UpdateJob(ctx, job.ID, alice, domain.JobInput{Company: "Globex", Position: "Engineer", Status: s})
			require.NoError(t, err, s)
			assert.Equal(t, domain.PipelineStatus(s), updated.Status)
		}
	})

	t.Run("Omitted status keeps the current value", func(t *testing.T) {
		job, err := f.jobs.CreateJob(ctx, alice, domain.JobInput{Company: "Initech", Position: "Engineer", Status: "INTERVIEW"})
		require.NoError(t, err)
		updated, err := f.jobs.UpdateJob(ctx, job.ID, alice, domain.JobInput{Company: "Initech", Position: "Lead"})
		require.NoError(t, err)
		assert.Equal(t, domain.PipelineInterview, updated.Status)
		assert.Equal(t, job.AppliedAt, updated.AppliedAt)
	})

	t.Run("Salary range must be ordered", func(t *testing.T) {
		lo, hi := 150000.0, 90000.0
		_, err := f.jobs.CreateJob(ctx, alice, domain.JobInput{Company: "Acme", Position: "Engineer", SalaryMin: &lo, SalaryMax: &hi})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestInterviewStatusValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	job := f.job(t, alice, "Acme", "")

	iv := f.interview(t, alice, job.ID, "2025-03-01")
	assert.Equal(t, domain.InterviewScheduled, iv.Status)
	assert.Equal(t, 1, iv.Round)

	_, err := f.interviews.UpdateInterview(ctx, iv.ID, alice, domain.InterviewInput{
		JobID: job.ID, Date: "2025-03-01", Type: "PHONE", Status: "DONE",
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: job.ID, Date: "2025-03-01", Type: "COFFEE"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	zero := 0
	_, err = f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: job.ID, Date: "2025-03-01", Type: "VIDEO", Round: &zero})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: job.ID, Date: "03/01/2025", Type: "VIDEO"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	negative := -30
	for _, d := range []*int{&zero, &negative} {
		_, err = f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: job.ID, Date: "2025-03-02", Type: "VIDEO", Duration: d})
		require.Error(t, err, "duration %d", *d)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "duration", appErr.Field)

		_, err = f.interviews.UpdateInterview(ctx, iv.ID, alice, domain.InterviewInput{JobID: job.ID, Date: "2025-03-01", Type: "PHONE", Duration: d})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	}

	saved, err := f.jobs.ListJobInterviews(ctx, job.ID, alice)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Nil(t, saved[0].Duration)

	stored, err := f.interviews.GetInterview(ctx, iv.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewScheduled, stored.Status)
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	job := f.job(t, alice, "Acme", "")
	iv := f.interview(t, alice, job.ID, "2025-03-01")

	t.Run("Foreign job looks missing", func(t *testing.T) {
		_, err := f.jobs.GetJob(ctx, job.ID, bob)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		_, missing := f.jobs.GetJob(ctx, "00000000-0000-0000-0000-000000000000", bob)
		assert.Equal(t, missing.Error(), err.Error())
	})

	t.Run("Foreign update and delete leave the job intact", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(ctx, job.ID, bob, domain.JobInput{Company: "Hijack", Position: "X"})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		assert.True(t, apperror.Is(f.jobs.DeleteJob(ctx, job.ID, bob), apperror.KindNotFound))

		stored, err := f.jobs.GetJob(ctx, job.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "Acme", stored.Company)
	})

	t.Run("Interviews are owned through their job", func(t *testing.T) {
		_, err := f.interviews.GetInterview(ctx, iv.ID, bob)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		assert.True(t, apperror.Is(f.interviews.DeleteInterview(ctx, iv.ID, bob), apperror.KindNotFound))

		_, err = f.jobs.ListJobInterviews(ctx, job.ID, bob)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("Denials are audited", func(t *testing.T) {
		f.auditor.AssertCalled(t, "AccessDenied", mock.Anything, domain.KindJob, job.ID, bob)
		f.auditor.AssertCalled(t, "AccessDenied", mock.Anything, domain.KindInterview, iv.ID, bob)
	})

	t.Run("Missing caller is unauthenticated", func(t *testing.T) {
		_, err := f.jobs.ListJobs(ctx, "")
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
		_, err = f.jobs.GetJob(ctx, job.ID, "")
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
		_, err = f.interviews.CreateInterview(ctx, "", domain.InterviewInput{JobID: job.ID, Date: "2025-03-01", Type: "PHONE"})
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})
}

func TestInterviewReferenceIntegrity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	j1 := f.job(t, alice, "Acme", "")
	j2 := f.job(t, bob, "Globex", "")

	t.Run("Creating against another user's job fails", func(t *testing.T) {
		_, err := f.interviews.CreateInterview(ctx, bob, domain.InterviewInput{JobID: j1.ID, Date: "2025-03-01", Type: "PHONE"})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindReference))

		list, err := f.interviews.ListInterviews(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, list)
		list, err = f.interviews.ListInterviews(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Unknown job id fails the same way", func(t *testing.T) {
		_, err := f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: "no-such-job", Date: "2025-03-01", Type: "PHONE"})
		assert.True(t, apperror.Is(err, apperror.KindReference))
	})

	t.Run("Moving an interview to a foreign job fails", func(t *testing.T) {
		iv := f.interview(t, alice, j1.ID, "2025-03-01")
		_, err := f.interviews.UpdateInterview(ctx, iv.ID, alice, domain.InterviewInput{JobID: j2.ID, Date: "2025-03-01", Type: "PHONE"})
		assert.True(t, apperror.Is(err, apperror.KindReference))

		stored, err := f.interviews.GetInterview(ctx, iv.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, j1.ID, stored.JobID)
	})

	t.Run("Deleting a job removes its interviews", func(t *testing.T) {
		job := f.job(t, alice, "Umbrella", "")
		iv := f.interview(t, alice, job.ID, "2025-04-01")
		require.NoError(t, f.jobs.DeleteJob(ctx, job.ID, alice))

		_, err := f.interviews.GetInterview(ctx, iv.ID, alice)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestApplicationContactReference(t *testing.T) {
	ctx := context.Background()

	t.Run("Enforced: foreign contact is rejected", func(t *testing.T) {
		f := newFixture(t, true)
		c, err := f.contacts.CreateContact(ctx, bob, domain.ContactInput{FirstName: "Grace"})
		require.NoError(t, err)

		_, err = f.applications.CreateApplication(ctx, alice, domain.ApplicationInput{Company: "Acme", Position: "Engineer", ContactID: &c.ID})
		assert.True(t, apperror.Is(err, apperror.KindReference))
	})

	t.Run("Not enforced: foreign contact is accepted", func(t *testing.T) {
		f := newFixture(t, false)
		c, err := f.contacts.CreateContact(ctx, bob, domain.ContactInput{FirstName: "Grace"})
		require.NoError(t, err)

		app, err := f.applications.CreateApplication(ctx, alice, domain.ApplicationInput{Company: "Acme", Position: "Engineer", ContactID: &c.ID})
		require.NoError(t, err)
		assert.Equal(t, c.ID, *app.ContactID)
	})

	t.Run("Not enforced: unknown contact still fails", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.applications.CreateApplication(ctx, alice, domain.ApplicationInput{Company: "Acme", Position: "Engineer", ContactID: strPtr("missing")})
		assert.True(t, apperror.Is(err, apperror.KindReference))
	})

	t.Run("Deleting a contact detaches its applications", func(t *testing.T) {
		f := newFixture(t, true)
		c, err := f.contacts.CreateContact(ctx, alice, domain.ContactInput{FirstName: "Ada"})
		require.NoError(t, err)
		app, err := f.applications.CreateApplication(ctx, alice, domain.ApplicationInput{Company: "Acme", Position: "Engineer", ContactID: &c.ID})
		require.NoError(t, err)

		linked, err := f.contacts.ListContactApplications(ctx, c.ID, alice)
		require.NoError(t, err)
		assert.Len(t, linked, 1)

		require.NoError(t, f.contacts.DeleteContact(ctx, c.ID, alice))
		stored, err := f.applications.GetApplication(ctx, app.ID, alice)
		require.NoError(t, err)
		assert.Nil(t, stored.ContactID)
		assert.Equal(t, "Acme", stored.Company)
	})

	t.Run("Application deadline is normalized", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.applications.CreateApplication(ctx, alice, domain.ApplicationInput{Company: "Acme", Position: "Engineer", ApplicationDeadline: strPtr("next week")})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestListScopingAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.job(t, alice, "Older", "2025-01-01")
	f.job(t, alice, "Newer", "2025-02-01")
	f.job(t, bob, "Elsewhere", "2025-03-01")

	jobs, err := f.jobs.ListJobs(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Newer", jobs[0].Company)
	assert.Equal(t, "Older", jobs[1].Company)

	empty, err := f.contacts.ListContacts(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDateNormalizationUsesCallerZone(t *testing.T) {
	f := newFixture(t, true)
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ctx := dateutil.WithLocation(context.Background(), ny)

	job := f.job(t, alice, "Acme", "")
	iv, err := f.interviews.CreateInterview(ctx, alice, domain.InterviewInput{JobID: job.ID, Date: "2025-03-01", Type: "PHONE"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", iv.DateLocal)
	assert.Equal(t, time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC), iv.Date.UTC())

	got, err := f.interviews.GetInterview(ctx, iv.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got.DateLocal)
}

func TestStorageFailureIsReported(t *testing.T) {
	repo := new(MockJobRepo)
	repo.On("ListByOwner", mock.Anything, alice).Return(nil, errors.New("connection refused"))
	repo.On("GetByID", mock.Anything, "job-1").Return(nil, errors.New("connection refused"))

	store := memory.NewStore()
	guard := usecase.NewOwnershipGuard(repo, store.Applications(), store.Contacts(), store.Interviews(), nil)
	uc := usecase.NewJobUsecase(repo, store.Interviews(), guard, validation.New())

	_, err := uc.ListJobs(context.Background(), alice)
	assert.True(t, apperror.Is(err, apperror.KindStorage))
	assert.NotContains(t, err.Error(), "connection refused")

	_, err = uc.GetJob(context.Background(), "job-1", alice)
	assert.True(t, apperror.Is(err, apperror.KindStorage))

	repo.AssertExpectations(t)
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	job := f.job(t, alice, "Acme", "")
	_, err := f.jobs.CreateJob(ctx, alice, domain.JobInput{Company: "Globex", Position: "Engineer", Status: "OFFER"})
	require.NoError(t, err)
	f.job(t, bob, "Elsewhere", "")

	future := time.Now().AddDate(0, 0, 3).Format(dateutil.DateLayout)
	past := time.Now().AddDate(0, 0, -3).Format(dateutil.DateLayout)
	f.interview(t, alice, job.ID, future)
	f.interview(t, alice, job.ID, past)

	summary, err := f.dashboard.Summary(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalJobs)
	assert.Equal(t, 1, summary.JobsByStatus[domain.PipelineWishlist])
	assert.Equal(t, 1, summary.JobsByStatus[domain.PipelineOffer])
	assert.Equal(t, 0, summary.JobsByStatus[domain.PipelineRejected])
	assert.Len(t, summary.JobsByStatus, len(domain.AllPipelineStatuses))
	assert.Equal(t, 0, summary.TotalApplications)
	require.Len(t, summary.UpcomingInterviews, 1)
	assert.Equal(t, future, summary.UpcomingInterviews[0].DateLocal)

	_, err = f.dashboard.Summary(ctx, "")
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
}
