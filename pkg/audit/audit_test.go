package audit_test

import (
	"context"
	"testing"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessDeniedHashesCaller(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := audit.NewWithZap(zap.New(core), "jobtracker", "test")

	ctx := context.WithValue(context.Background(), domain.KeyRequestID, "req-1")
	l.AccessDenied(ctx, domain.KindJob, "job-1", "bob@example.com")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()

	assert.Equal(t, "access_denied", entry.Message)
	assert.Equal(t, "Job", fields["entity_kind"])
	assert.Equal(t, "job-1", fields["entity_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, audit.HashValue("bob@example.com"), fields["subject"])
	assert.NotContains(t, fields["subject"], "bob")
}
