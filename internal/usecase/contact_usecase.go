package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	contactRepo     domain.ContactRepository
	applicationRepo domain.ApplicationRepository
	guard           *OwnershipGuard
	validate        *validator.Validate
	now             func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(
	contactRepo domain.ContactRepository,
	applicationRepo domain.ApplicationRepository,
	guard *OwnershipGuard,
	validate *validator.Validate,
) domain.ContactUsecase {
	return &contactUsecase{
		contactRepo:     contactRepo,
		applicationRepo: applicationRepo,
		guard:           guard,
		validate:        validate,
		now:             time.Now,
	}
}

func (uc *contactUsecase) ListContacts(ctx context.Context, callerID string) ([]domain.Contact, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	contacts, err := uc.contactRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, nil
}

func (uc *contactUsecase) GetContact(ctx context.Context, id, callerID string) (*domain.Contact, error) {
	return uc.guard.AuthorizeContact(ctx, id, callerID)
}

func (uc *contactUsecase) CreateContact(ctx context.Context, callerID string, input domain.ContactInput) (*domain.Contact, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	contact, err := uc.buildContact(input)
	if err != nil {
		return nil, err
	}
	contact.OwnerID = callerID
	contact.CreatedAt = contact.UpdatedAt

	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		return nil, storageError(err)
	}
	return contact, nil
}

func (uc *contactUsecase) UpdateContact(ctx context.Context, id, callerID string, input domain.ContactInput) (*domain.Contact, error) {
	existing, err := uc.guard.AuthorizeContact(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	contact, err := uc.buildContact(input)
	if err != nil {
		return nil, err
	}
	contact.ID = existing.ID
	contact.OwnerID = existing.OwnerID
	contact.CreatedAt = existing.CreatedAt

	if err := uc.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(domain.KindContact)
		}
		return nil, storageError(err)
	}
	return contact, nil
}

// DeleteContact removes the contact; applications that referenced it keep
// their data with contact_id cleared.
func (uc *contactUsecase) DeleteContact(ctx context.Context, id, callerID string) error {
	if _, err := uc.guard.AuthorizeContact(ctx, id, callerID); err != nil {
		return err
	}
	if err := uc.contactRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(domain.KindContact)
		}
		return storageError(err)
	}
	return nil
}

func (uc *contactUsecase) ListContactApplications(ctx context.Context, id, callerID string) ([]domain.Application, error) {
	if _, err := uc.guard.AuthorizeContact(ctx, id, callerID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListByContact(ctx, id, callerID)
	if err != nil {
		return nil, storageError(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (uc *contactUsecase) buildContact(input domain.ContactInput) (*domain.Contact, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = cleanString(input.LastName)
	input.Email = cleanString(input.Email)
	input.Phone = cleanString(input.Phone)
	input.JobTitle = cleanString(input.JobTitle)
	input.Company = cleanString(input.Company)
	input.LinkedIn = cleanString(input.LinkedIn)
	input.Notes = cleanString(input.Notes)

	if err := checkStruct(uc.validate, input); err != nil {
		return nil, err
	}

	return &domain.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		JobTitle:  input.JobTitle,
		Company:   input.Company,
		LinkedIn:  input.LinkedIn,
		Notes:     input.Notes,
		UpdatedAt: uc.now(),
	}, nil
}
