package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo       domain.JobRepository
	interviewRepo domain.InterviewRepository
	guard         *OwnershipGuard
	validate      *validator.Validate
	now           func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	interviewRepo domain.InterviewRepository,
	guard *OwnershipGuard,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:       jobRepo,
		interviewRepo: interviewRepo,
		guard:         guard,
		validate:      validate,
		now:           time.Now,
	}
}

func (u *jobUsecase) ListJobs(ctx context.Context, callerID string) ([]domain.Job, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id, callerID string) (*domain.Job, error) {
	return u.guard.AuthorizeJob(ctx, id, callerID)
}

func (u *jobUsecase) CreateJob(ctx context.Context, callerID string, input domain.JobInput) (*domain.Job, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	job, err := u.buildJob(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	job.OwnerID = callerID

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, storageError(err)
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id, callerID string, input domain.JobInput) (*domain.Job, error) {
	existing, err := u.guard.AuthorizeJob(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	job, err := u.buildJob(ctx, input, existing)
	if err != nil {
		return nil, err
	}
	job.ID = existing.ID
	job.OwnerID = existing.OwnerID

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(domain.KindJob)
		}
		return nil, storageError(err)
	}
	return job, nil
}

// DeleteJob removes the job together with its interviews.
func (u *jobUsecase) DeleteJob(ctx context.Context, id, callerID string) error {
	if _, err := u.guard.AuthorizeJob(ctx, id, callerID); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(domain.KindJob)
		}
		return storageError(err)
	}
	return nil
}

func (u *jobUsecase) ListJobInterviews(ctx context.Context, id, callerID string) ([]domain.Interview, error) {
	if _, err := u.guard.AuthorizeJob(ctx, id, callerID); err != nil {
		return nil, err
	}
	interviews, err := u.interviewRepo.ListByJob(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return localizeInterviews(ctx, interviews), nil
}

// buildJob validates input and merges it over current (nil on create).
func (u *jobUsecase) buildJob(ctx context.Context, input domain.JobInput, current *domain.Job) (*domain.Job, error) {
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	input.Location = cleanString(input.Location)
	input.Notes = cleanString(input.Notes)
	input.JobURL = cleanString(input.JobURL)
	input.ContactName = cleanString(input.ContactName)
	input.ContactEmail = cleanString(input.ContactEmail)
	input.ContactPhone = cleanString(input.ContactPhone)

	if err := checkStruct(u.validate, input); err != nil {
		return nil, err
	}
	if err := checkSalaryRange(input.SalaryMin, input.SalaryMax); err != nil {
		return nil, err
	}

	var currentStatus domain.PipelineStatus
	now := u.now()
	appliedAt := now
	if current != nil {
		currentStatus = current.Status
		appliedAt = current.AppliedAt
	}

	status, err := resolvePipelineStatus(input.Status, currentStatus)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.AppliedAt) != "" {
		if appliedAt, err = parseDate(ctx, "applied_at", input.AppliedAt); err != nil {
			return nil, err
		}
	}

	return &domain.Job{
		Company:      input.Company,
		Position:     input.Position,
		Location:     input.Location,
		Notes:        input.Notes,
		Status:       status,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		JobURL:       input.JobURL,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		AppliedAt:    appliedAt,
		UpdatedAt:    now,
	}, nil
}
