// Package audit writes security-relevant events (cross-tenant access attempts,
// rate-limit trips) as structured zap logs, separate from the application log.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go-jobtracker-backend/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventAccessDenied       EventType = "access_denied"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthenticated    EventType = "unauthenticated"
)

// Event represents an audit event to be logged
type Event struct {
	Timestamp time.Time
	Event     EventType
	SubjectID string // hashed before logging
	IP        string
	RequestID string
	Details   map[string]string
}

// Logger provides structured logging for audit events
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger *Logger

// New builds a production zap logger writing JSON to stdout.
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	al := NewWithZap(logger, serviceName, environment)
	defaultLogger = al
	return al
}

// NewWithZap wraps an existing zap logger; tests pass zap.NewNop() or an observer core.
func NewWithZap(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: logger, serviceName: serviceName, environment: environment}
}

// Default returns the process-wide audit logger, or a no-op logger before New is called.
func Default() *Logger {
	if defaultLogger == nil {
		return NewWithZap(zap.NewNop(), "", "")
	}
	return defaultLogger
}

// Log logs an audit event
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zapcore.WarnLevel
	if event.Event == EventAccessDenied {
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectID != "" {
		fields = append(fields, zap.String("subject", HashValue(event.SubjectID)))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	} else if reqID, ok := ctx.Value(domain.KeyRequestID).(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String(k, v))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// AccessDenied implements domain.AccessAuditor.
func (l *Logger) AccessDenied(ctx context.Context, kind domain.EntityKind, id, callerID string) {
	l.Log(ctx, Event{
		Event:     EventAccessDenied,
		SubjectID: callerID,
		Details: map[string]string{
			"entity_kind": string(kind),
			"entity_id":   id,
		},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (l *Logger) LogRateLimitTriggered(ctx context.Context, subject, ip, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:     EventRateLimitTriggered,
		SubjectID: subject,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]string{"endpoint": endpoint},
	})
}

// Unauthenticated logs a rejected credential. The token itself is never logged.
func (l *Logger) Unauthenticated(ctx context.Context, ip, endpoint, reason string) {
	l.Log(ctx, Event{
		Event:   EventUnauthenticated,
		IP:      ip,
		Details: map[string]string{"endpoint": endpoint, "reason": reason},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
