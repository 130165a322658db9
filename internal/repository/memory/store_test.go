package memory_test

import (
	"context"
	"testing"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newJob(t *testing.T, repo domain.JobRepository, owner, company string, applied time.Time) *domain.Job {
	t.Helper()
	job := &domain.Job{OwnerID: owner, Company: company, Position: "Engineer", Status: domain.PipelineApplied, AppliedAt: applied}
	require.NoError(t, repo.Create(context.Background(), job))
	require.NotEmpty(t, job.ID)
	return job
}

func TestJobs_ListByOwnerScopedAndOrdered(t *testing.T) {
	s := memory.NewStore()
	jobs := s.Jobs()
	ctx := context.Background()

	newJob(t, jobs, "alice", "Old", day(1))
	newJob(t, jobs, "alice", "New", day(5))
	newJob(t, jobs, "bob", "Other", day(3))

	list, err := jobs.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Company)
	assert.Equal(t, "Old", list[1].Company)

	empty, err := jobs.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestJobs_UpdateAndDeleteScopedByOwner(t *testing.T) {
	s := memory.NewStore()
	jobs := s.Jobs()
	ctx := context.Background()
	job := newJob(t, jobs, "alice", "Acme", day(1))

	hijack := *job
	hijack.OwnerID = "bob"
	hijack.Company = "Stolen"
	assert.ErrorIs(t, jobs.Update(ctx, &hijack), domain.ErrNotFound)
	assert.ErrorIs(t, jobs.Delete(ctx, job.ID, "bob"), domain.ErrNotFound)

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}

func TestJobs_DeleteCascadesInterviews(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	job := newJob(t, s.Jobs(), "alice", "Acme", day(1))

	iv := &domain.Interview{JobID: job.ID, Date: day(10), Type: domain.InterviewPhone, Round: 1, Status: domain.InterviewScheduled}
	require.NoError(t, s.Interviews().CreateForOwner(ctx, "alice", iv))

	require.NoError(t, s.Jobs().Delete(ctx, job.ID, "alice"))

	_, err := s.Interviews().GetByID(ctx, iv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInterviews_CreateForOwnerChecksParent(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	job := newJob(t, s.Jobs(), "alice", "Acme", day(1))

	iv := &domain.Interview{JobID: job.ID, Date: day(10), Type: domain.InterviewPhone, Round: 1, Status: domain.InterviewScheduled}
	err := s.Interviews().CreateForOwner(ctx, "bob", iv)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	missing := &domain.Interview{JobID: "does-not-exist", Date: day(10)}
	assert.ErrorIs(t, s.Interviews().CreateForOwner(ctx, "alice", missing), domain.ErrReferenceNotFound)

	list, err := s.Interviews().ListByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Interviews().CreateForOwner(ctx, "alice", iv))
	assert.Equal(t, "alice", iv.OwnerID)
	require.NotNil(t, iv.Job)
	assert.Equal(t, "Acme", iv.Job.Company)
}

func TestInterviews_UpdateForOwnerRejectsForeignJob(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	mine := newJob(t, s.Jobs(), "alice", "Acme", day(1))
	theirs := newJob(t, s.Jobs(), "bob", "Globex", day(1))

	iv := &domain.Interview{JobID: mine.ID, Date: day(10), Type: domain.InterviewVideo, Round: 1, Status: domain.InterviewScheduled}
	require.NoError(t, s.Interviews().CreateForOwner(ctx, "alice", iv))

	moved := *iv
	moved.JobID = theirs.ID
	assert.ErrorIs(t, s.Interviews().UpdateForOwner(ctx, "alice", &moved), domain.ErrReferenceNotFound)
	assert.ErrorIs(t, s.Interviews().UpdateForOwner(ctx, "bob", &moved), domain.ErrNotFound)

	got, err := s.Interviews().GetByID(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.JobID)
}

func TestInterviews_ListUpcoming(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	job := newJob(t, s.Jobs(), "alice", "Acme", day(1))

	create := func(d int, status domain.InterviewStatus) {
		iv := &domain.Interview{JobID: job.ID, Date: day(d), Type: domain.InterviewPhone, Round: 1, Status: status}
		require.NoError(t, s.Interviews().CreateForOwner(ctx, "alice", iv))
	}
	create(2, domain.InterviewScheduled)
	create(12, domain.InterviewRescheduled)
	create(11, domain.InterviewScheduled)
	create(13, domain.InterviewCancelled)
	create(14, domain.InterviewCompleted)

	list, err := s.Interviews().ListUpcoming(ctx, "alice", day(10), 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(11), list[0].Date)
	assert.Equal(t, day(12), list[1].Date)

	limited, err := s.Interviews().ListUpcoming(ctx, "alice", day(1), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, day(2), limited[0].Date)
}

func TestContacts_DeleteDetachesApplications(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	contact := &domain.Contact{OwnerID: "alice", FirstName: "Sam"}
	require.NoError(t, s.Contacts().Create(ctx, contact))

	app := &domain.Application{OwnerID: "alice", Company: "Acme", Position: "Engineer", Status: domain.PipelineApplied, ContactID: &contact.ID, AppliedAt: day(1)}
	require.NoError(t, s.Applications().Create(ctx, app))

	byContact, err := s.Applications().ListByContact(ctx, contact.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, byContact, 1)

	require.NoError(t, s.Contacts().Delete(ctx, contact.ID, "alice"))

	got, err := s.Applications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ContactID)
	assert.Equal(t, "Acme", got.Company)
}

func TestApplications_UnknownContactRejected(t *testing.T) {
	s := memory.NewStore()
	missing := "no-such-contact"
	app := &domain.Application{OwnerID: "alice", Company: "Acme", Position: "Engineer", ContactID: &missing}
	assert.ErrorIs(t, s.Applications().Create(context.Background(), app), domain.ErrReferenceNotFound)
}

func TestContacts_ListOrderedByFirstName(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	for _, name := range []string{"Zoe", "Adam", "Maya"} {
		require.NoError(t, s.Contacts().Create(ctx, &domain.Contact{OwnerID: "alice", FirstName: name}))
	}
	require.NoError(t, s.Contacts().Create(ctx, &domain.Contact{OwnerID: "bob", FirstName: "Bea"}))

	list, err := s.Contacts().ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Adam", "Maya", "Zoe"}, []string{list[0].FirstName, list[1].FirstName, list[2].FirstName})
}

func TestCountByStatus(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	newJob(t, s.Jobs(), "alice", "A", day(1))
	newJob(t, s.Jobs(), "alice", "B", day(2))
	offer := newJob(t, s.Jobs(), "alice", "C", day(3))
	offer.Status = domain.PipelineOffer
	require.NoError(t, s.Jobs().Update(ctx, offer))
	newJob(t, s.Jobs(), "bob", "D", day(1))

	counts, err := s.Jobs().CountByStatus(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.PipelineApplied])
	assert.Equal(t, 1, counts[domain.PipelineOffer])
}

func TestUsers_UpsertKeepsCreatedAt(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Upsert(ctx, &domain.User{ID: "u1", Email: "a@example.com", CreatedAt: day(1)}))
	require.NoError(t, s.Users().Upsert(ctx, &domain.User{ID: "u1", Email: "b@example.com", CreatedAt: day(9)}))

	u, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", u.Email)
	assert.Equal(t, day(1), u.CreatedAt)
}
