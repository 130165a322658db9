package usecase

import (
	"context"
	"strings"
	"time"

	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/dateutil"
	"go-jobtracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// cleanString trims s and maps blank values to nil.
func cleanString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func checkStruct(v *validator.Validate, input any) error {
	if err := v.Struct(input); err != nil {
		first := validation.First(err)
		return apperror.Validation(first.Field, first.Message)
	}
	return nil
}

func checkSalaryRange(lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		return apperror.Validation("salary_min", "salary_min cannot be greater than salary_max")
	}
	return nil
}

// parseDate normalizes a user supplied date in the caller's zone.
func parseDate(ctx context.Context, field, raw string) (time.Time, error) {
	t, err := dateutil.NormalizeDate(raw, dateutil.LocationFrom(ctx))
	if err != nil {
		return time.Time{}, apperror.Validation(field, field+" must be a date in YYYY-MM-DD format or an RFC3339 timestamp")
	}
	return t, nil
}
