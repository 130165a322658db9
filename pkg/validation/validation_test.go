package validation_test

import (
	"testing"

	"go-jobtracker-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required,no_emoji"`
	Phone *string `json:"phone" validate:"omitempty,valid_phone"`
	At    *string `json:"at" validate:"omitempty,clock_time"`
}

func strPtr(s string) *string { return &s }

func TestCustomValidators(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(sample{Name: "Ada", Phone: strPtr("+1 (555) 123-4567"), At: strPtr("09:30")}))

	err := v.Struct(sample{Name: "Ada", At: strPtr("25:00")})
	require.Error(t, err)
	first := validation.First(err)
	assert.Equal(t, "at", first.Field)
	assert.Contains(t, first.Message, "HH:MM")

	err = v.Struct(sample{Name: "Ada", Phone: strPtr("12")})
	require.Error(t, err)
	assert.Equal(t, "phone", validation.First(err).Field)

	err = v.Struct(sample{Name: "Ada 🚀"})
	require.Error(t, err)
	assert.Equal(t, "name", validation.First(err).Field)
}

func TestRequiredUsesJSONName(t *testing.T) {
	err := validation.New().Struct(sample{})
	require.Error(t, err)

	all := validation.FormatValidationErrors(err)
	require.Len(t, all, 1)
	assert.Equal(t, "name", all[0].Field)
	assert.Equal(t, "name is required", all[0].Message)
}
