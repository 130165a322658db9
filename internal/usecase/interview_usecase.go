package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/dateutil"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	guard         *OwnershipGuard
	refs          *ReferenceChecker
	validate      *validator.Validate
	now           func() time.Time
}

// NewInterviewUsecase creates a new interview usecase
func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	guard *OwnershipGuard,
	refs *ReferenceChecker,
	validate *validator.Validate,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		guard:         guard,
		refs:          refs,
		validate:      validate,
		now:           time.Now,
	}
}

func (uc *interviewUsecase) ListInterviews(ctx context.Context, callerID string) ([]domain.Interview, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	interviews, err := uc.interviewRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	return localizeInterviews(ctx, interviews), nil
}

func (uc *interviewUsecase) GetInterview(ctx context.Context, id, callerID string) (*domain.Interview, error) {
	iv, err := uc.guard.AuthorizeInterview(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	localize(ctx, iv)
	return iv, nil
}

func (uc *interviewUsecase) CreateInterview(ctx context.Context, callerID string, input domain.InterviewInput) (*domain.Interview, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	iv, err := uc.buildInterview(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if err := uc.refs.ValidateReference(ctx, domain.KindJob, iv.JobID, callerID); err != nil {
		return nil, err
	}
	iv.CreatedAt = iv.UpdatedAt

	// The store repeats the parent check atomically; a job deleted in between
	// surfaces here as ErrReferenceNotFound.
	if err := uc.interviewRepo.CreateForOwner(ctx, callerID, iv); err != nil {
		if errors.Is(err, domain.ErrReferenceNotFound) {
			return nil, referenceError(domain.KindJob)
		}
		return nil, storageError(err)
	}
	iv.OwnerID = callerID
	localize(ctx, iv)
	return iv, nil
}

func (uc *interviewUsecase) UpdateInterview(ctx context.Context, id, callerID string, input domain.InterviewInput) (*domain.Interview, error) {
	existing, err := uc.guard.AuthorizeInterview(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	iv, err := uc.buildInterview(ctx, input, existing)
	if err != nil {
		return nil, err
	}
	if iv.JobID != existing.JobID {
		if err := uc.refs.ValidateReference(ctx, domain.KindJob, iv.JobID, callerID); err != nil {
			return nil, err
		}
	}
	iv.ID = existing.ID
	iv.CreatedAt = existing.CreatedAt

	if err := uc.interviewRepo.UpdateForOwner(ctx, callerID, iv); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, notFound(domain.KindInterview)
		case errors.Is(err, domain.ErrReferenceNotFound):
			return nil, referenceError(domain.KindJob)
		}
		return nil, storageError(err)
	}
	iv.OwnerID = callerID
	localize(ctx, iv)
	return iv, nil
}

func (uc *interviewUsecase) DeleteInterview(ctx context.Context, id, callerID string) error {
	if _, err := uc.guard.AuthorizeInterview(ctx, id, callerID); err != nil {
		return err
	}
	if err := uc.interviewRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(domain.KindInterview)
		}
		return storageError(err)
	}
	return nil
}

func (uc *interviewUsecase) buildInterview(ctx context.Context, input domain.InterviewInput, current *domain.Interview) (*domain.Interview, error) {
	input.Time = cleanString(input.Time)
	input.Location = cleanString(input.Location)
	input.Notes = cleanString(input.Notes)

	if err := checkStruct(uc.validate, input); err != nil {
		return nil, err
	}

	ivType, err := resolveInterviewType(input.Type)
	if err != nil {
		return nil, err
	}
	var currentStatus domain.InterviewStatus
	if current != nil {
		currentStatus = current.Status
	}
	status, err := resolveInterviewStatus(input.Status, currentStatus)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(ctx, "date", input.Date)
	if err != nil {
		return nil, err
	}

	round := 1
	if current != nil {
		round = current.Round
	}
	if input.Round != nil {
		if *input.Round < 1 {
			return nil, apperror.Validation("round", "round must be at least 1")
		}
		round = *input.Round
	}
	if input.Duration != nil && *input.Duration <= 0 {
		return nil, apperror.Validation("duration", "duration must be a positive number of minutes")
	}

	return &domain.Interview{
		JobID:     input.JobID,
		Date:      date,
		Time:      input.Time,
		Type:      ivType,
		Location:  input.Location,
		Notes:     input.Notes,
		Duration:  input.Duration,
		Round:     round,
		Status:    status,
		UpdatedAt: uc.now(),
	}, nil
}

// localizeInterviews fills DateLocal with the calendar date in the caller's zone.
func localizeInterviews(ctx context.Context, interviews []domain.Interview) []domain.Interview {
	if interviews == nil {
		return []domain.Interview{}
	}
	for i := range interviews {
		localize(ctx, &interviews[i])
	}
	return interviews
}

func localize(ctx context.Context, iv *domain.Interview) {
	iv.DateLocal = dateutil.CalendarDate(iv.Date, dateutil.LocationFrom(ctx))
}
