package usecase

import (
	"fmt"
	"strings"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
)

// Status values are checked for set membership only. Any pipeline status may
// follow any other, e.g. REJECTED back to OFFER when the user fixes a mistake.

// resolvePipelineStatus returns the status to persist. An empty value keeps
// current, or WISHLIST when there is no current record.
func resolvePipelineStatus(raw string, current domain.PipelineStatus) (domain.PipelineStatus, error) {
	if strings.TrimSpace(raw) == "" {
		if current != "" {
			return current, nil
		}
		return domain.PipelineWishlist, nil
	}
	status, ok := domain.ParsePipelineStatus(raw)
	if !ok {
		return "", apperror.Validation("status", fmt.Sprintf("status must be one of: %s", joinValues(domain.AllPipelineStatuses)))
	}
	return status, nil
}

func resolveInterviewStatus(raw string, current domain.InterviewStatus) (domain.InterviewStatus, error) {
	if strings.TrimSpace(raw) == "" {
		if current != "" {
			return current, nil
		}
		return domain.InterviewScheduled, nil
	}
	status, ok := domain.ParseInterviewStatus(raw)
	if !ok {
		return "", apperror.Validation("status", fmt.Sprintf("status must be one of: %s", joinValues(domain.AllInterviewStatuses)))
	}
	return status, nil
}

func resolveInterviewType(raw string) (domain.InterviewType, error) {
	t, ok := domain.ParseInterviewType(raw)
	if !ok {
		return "", apperror.Validation("type", fmt.Sprintf("type must be one of: %s", joinValues(domain.AllInterviewTypes)))
	}
	return t, nil
}

func joinValues[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
