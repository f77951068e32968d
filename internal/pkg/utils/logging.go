package utils

import (
	"context"
	"mediscan-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// LogOperation times fn and logs one line with its outcome. The error from fn
// is returned untouched.
func LogOperation(logger *zap.Logger, operation string, requestID string, fn func() error) error {
	start := time.Now()
	err := fn()

	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Bool(constvars.LoggingSuccessKey, err == nil),
	}
	if err != nil {
		logger.Error("operation failed", append(fields, zap.Error(err))...)
		return err
	}
	logger.Info("operation completed", fields...)
	return nil
}

// LogBusinessEvent records a state change on a booking, test or banner.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	logger.Info("business event", eventFields("business_event", event, requestID, fields)...)
}

// LogSecurityEvent records rejected credentials, denied admin access and role
// changes.
func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity Severity, fields ...zap.Field) {
	fields = append(fields, zap.String("severity", string(severity)))
	logger.Warn("security event", eventFields("security_event", event, requestID, fields)...)
}

func eventFields(kind, event, requestID string, extra []zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, len(extra)+3)
	fields = append(fields,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(kind, event),
		zap.Time("timestamp", time.Now()),
	)
	return append(fields, extra...)
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
