package domain_test

import (
	"testing"

	"go-jobtracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPipelineStatusMembership(t *testing.T) {
	for _, s := range domain.AllPipelineStatuses {
		parsed, ok := domain.ParsePipelineStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	for _, raw := range []string{"", "OFFERED", "wishlist", "Applied", "HIRED"} {
		_, ok := domain.ParsePipelineStatus(raw)
		assert.False(t, ok, "status %q", raw)
	}

	parsed, ok := domain.ParsePipelineStatus("  OFFER ")
	assert.True(t, ok)
	assert.Equal(t, domain.PipelineOffer, parsed)
}

func TestInterviewStatusMembership(t *testing.T) {
	for _, s := range domain.AllInterviewStatuses {
		assert.True(t, s.Valid())
	}
	_, ok := domain.ParseInterviewStatus("POSTPONED")
	assert.False(t, ok)

	assert.True(t, domain.InterviewScheduled.Upcoming())
	assert.True(t, domain.InterviewRescheduled.Upcoming())
	assert.False(t, domain.InterviewCancelled.Upcoming())
	assert.False(t, domain.InterviewCompleted.Upcoming())
}

func TestInterviewTypeMembership(t *testing.T) {
	assert.Len(t, domain.AllInterviewTypes, 8)
	for _, it := range domain.AllInterviewTypes {
		assert.True(t, it.Valid())
	}
	_, ok := domain.ParseInterviewType("CASE_STUDY")
	assert.False(t, ok)
}
