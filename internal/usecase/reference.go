package usecase

import (
	"context"
	"fmt"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
)

// ReferenceChecker validates foreign keys (Interview.job_id, Application.contact_id)
// against the caller's own records before a write.
type ReferenceChecker struct {
	guard *OwnershipGuard
}

func NewReferenceChecker(guard *OwnershipGuard) *ReferenceChecker {
	return &ReferenceChecker{guard: guard}
}

// ValidateReference fails with a reference error when the parent is missing or
// belongs to another user. Unauthenticated and storage errors pass through.
func (r *ReferenceChecker) ValidateReference(ctx context.Context, kind domain.EntityKind, id, callerID string) error {
	_, err := r.guard.Authorize(ctx, kind, id, callerID)
	if err == nil {
		return nil
	}
	if apperror.Is(err, apperror.KindNotFound) {
		return referenceError(kind)
	}
	return err
}

func referenceError(kind domain.EntityKind) error {
	return apperror.Reference(referenceField(kind), fmt.Sprintf("%s not found or access denied", kind))
}

func referenceField(kind domain.EntityKind) string {
	switch kind {
	case domain.KindJob:
		return "job_id"
	case domain.KindContact:
		return "contact_id"
	case domain.KindApplication:
		return "application_id"
	case domain.KindInterview:
		return "interview_id"
	}
	return ""
}
