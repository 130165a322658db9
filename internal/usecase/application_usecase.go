package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	guard           *OwnershipGuard
	refs            *ReferenceChecker
	validate        *validator.Validate
	// enforceContactOwnership rejects contact_id values that point at another
	// user's contact. When false only existence is checked, by the store.
	enforceContactOwnership bool
	now                     func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	guard *OwnershipGuard,
	refs *ReferenceChecker,
	validate *validator.Validate,
	enforceContactOwnership bool,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo:         applicationRepo,
		guard:                   guard,
		refs:                    refs,
		validate:                validate,
		enforceContactOwnership: enforceContactOwnership,
		now:                     time.Now,
	}
}

func (uc *applicationUsecase) ListApplications(ctx context.Context, callerID string) ([]domain.Application, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, id, callerID string) (*domain.Application, error) {
	return uc.guard.AuthorizeApplication(ctx, id, callerID)
}

func (uc *applicationUsecase) CreateApplication(ctx context.Context, callerID string, input domain.ApplicationInput) (*domain.Application, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	app, err := uc.buildApplication(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if err := uc.checkContact(ctx, app.ContactID, callerID); err != nil {
		return nil, err
	}
	app.OwnerID = callerID

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrReferenceNotFound) {
			return nil, referenceError(domain.KindContact)
		}
		return nil, storageError(err)
	}
	return app, nil
}

func (uc *applicationUsecase) UpdateApplication(ctx context.Context, id, callerID string, input domain.ApplicationInput) (*domain.Application, error) {
	existing, err := uc.guard.AuthorizeApplication(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	app, err := uc.buildApplication(ctx, input, existing)
	if err != nil {
		return nil, err
	}
	if err := uc.checkContact(ctx, app.ContactID, callerID); err != nil {
		return nil, err
	}
	app.ID = existing.ID
	app.OwnerID = existing.OwnerID

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, notFound(domain.KindApplication)
		case errors.Is(err, domain.ErrReferenceNotFound):
			return nil, referenceError(domain.KindContact)
		}
		return nil, storageError(err)
	}
	return app, nil
}

func (uc *applicationUsecase) DeleteApplication(ctx context.Context, id, callerID string) error {
	if _, err := uc.guard.AuthorizeApplication(ctx, id, callerID); err != nil {
		return err
	}
	if err := uc.applicationRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(domain.KindApplication)
		}
		return storageError(err)
	}
	return nil
}

func (uc *applicationUsecase) checkContact(ctx context.Context, contactID *string, callerID string) error {
	if contactID == nil || !uc.enforceContactOwnership {
		return nil
	}
	return uc.refs.ValidateReference(ctx, domain.KindContact, *contactID, callerID)
}

func (uc *applicationUsecase) buildApplication(ctx context.Context, input domain.ApplicationInput, current *domain.Application) (*domain.Application, error) {
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	input.Location = cleanString(input.Location)
	input.Notes = cleanString(input.Notes)
	input.JobURL = cleanString(input.JobURL)
	input.ContactName = cleanString(input.ContactName)
	input.ContactEmail = cleanString(input.ContactEmail)
	input.ContactPhone = cleanString(input.ContactPhone)
	input.ContactID = cleanString(input.ContactID)
	input.ApplicationDeadline = cleanString(input.ApplicationDeadline)

	if err := checkStruct(uc.validate, input); err != nil {
		return nil, err
	}
	if err := checkSalaryRange(input.SalaryMin, input.SalaryMax); err != nil {
		return nil, err
	}

	var currentStatus domain.PipelineStatus
	now := uc.now()
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

	var deadline *time.Time
	if input.ApplicationDeadline != nil {
		d, err := parseDate(ctx, "application_deadline", *input.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		deadline = &d
	}

	return &domain.Application{
		Company:             input.Company,
		Position:            input.Position,
		Location:            input.Location,
		Notes:               input.Notes,
		Status:              status,
		SalaryMin:           input.SalaryMin,
		SalaryMax:           input.SalaryMax,
		JobURL:              input.JobURL,
		ContactName:         input.ContactName,
		ContactEmail:        input.ContactEmail,
		ContactPhone:        input.ContactPhone,
		ContactID:           input.ContactID,
		ApplicationDeadline: deadline,
		AppliedAt:           appliedAt,
		UpdatedAt:           now,
	}, nil
}
