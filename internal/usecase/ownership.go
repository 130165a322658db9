package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
)

// OwnershipGuard resolves a single record and checks that the caller owns it,
// directly (Job, Application, Contact) or through the parent job (Interview).
// A missing record and a record owned by someone else produce the same error.
type OwnershipGuard struct {
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	contacts     domain.ContactRepository
	interviews   domain.InterviewRepository
	auditor      domain.AccessAuditor
}

func NewOwnershipGuard(
	jobs domain.JobRepository,
	applications domain.ApplicationRepository,
	contacts domain.ContactRepository,
	interviews domain.InterviewRepository,
	auditor domain.AccessAuditor,
) *OwnershipGuard {
	return &OwnershipGuard{
		jobs:         jobs,
		applications: applications,
		contacts:     contacts,
		interviews:   interviews,
		auditor:      auditor,
	}
}

func (g *OwnershipGuard) AuthorizeJob(ctx context.Context, id, callerID string) (*domain.Job, error) {
	return authorize(ctx, g, domain.KindJob, id, callerID, g.jobs.GetByID,
		func(j *domain.Job) string { return j.OwnerID })
}

func (g *OwnershipGuard) AuthorizeApplication(ctx context.Context, id, callerID string) (*domain.Application, error) {
	return authorize(ctx, g, domain.KindApplication, id, callerID, g.applications.GetByID,
		func(a *domain.Application) string { return a.OwnerID })
}

func (g *OwnershipGuard) AuthorizeContact(ctx context.Context, id, callerID string) (*domain.Contact, error) {
	return authorize(ctx, g, domain.KindContact, id, callerID, g.contacts.GetByID,
		func(c *domain.Contact) string { return c.OwnerID })
}

// AuthorizeInterview checks the owner of the interview's job.
func (g *OwnershipGuard) AuthorizeInterview(ctx context.Context, id, callerID string) (*domain.Interview, error) {
	return authorize(ctx, g, domain.KindInterview, id, callerID, g.interviews.GetByID,
		func(i *domain.Interview) string { return i.OwnerID })
}

// Authorize dispatches on kind and returns the record as one of
// *domain.Job, *domain.Application, *domain.Contact or *domain.Interview.
func (g *OwnershipGuard) Authorize(ctx context.Context, kind domain.EntityKind, id, callerID string) (any, error) {
	switch kind {
	case domain.KindJob:
		return g.AuthorizeJob(ctx, id, callerID)
	case domain.KindApplication:
		return g.AuthorizeApplication(ctx, id, callerID)
	case domain.KindContact:
		return g.AuthorizeContact(ctx, id, callerID)
	case domain.KindInterview:
		return g.AuthorizeInterview(ctx, id, callerID)
	}
	return nil, fmt.Errorf("authorize: unknown entity kind %q", kind)
}

func authorize[T any](
	ctx context.Context,
	g *OwnershipGuard,
	kind domain.EntityKind,
	id, callerID string,
	fetch func(context.Context, string) (*T, error),
	ownerOf func(*T) string,
) (*T, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, notFound(kind)
	}

	record, err := fetch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(kind)
		}
		return nil, storageError(err)
	}
	if record == nil {
		return nil, notFound(kind)
	}

	if ownerOf(record) != callerID {
		if g.auditor != nil {
			g.auditor.AccessDenied(ctx, kind, id, callerID)
		}
		return nil, notFound(kind)
	}
	return record, nil
}

func requireCaller(callerID string) error {
	if callerID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	return nil
}

func notFound(kind domain.EntityKind) error {
	return apperror.NotFound(fmt.Sprintf("%s not found", kind))
}

// storageError wraps repository failures; errors that already carry a kind pass through.
func storageError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
