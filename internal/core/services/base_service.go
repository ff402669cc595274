package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock, UTC.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
}

// AuthorizeOwner fails with ErrUnauthorized unless the acting user owns the resource.
func (s *BaseService) AuthorizeOwner(ctx context.Context, ownerID, actingUserID int64, resource string) error {
	if ownerID == actingUserID {
		return nil
	}
	s.GetLogger(ctx).Warn("User is not the owner of the resource",
		slog.String("resource", resource),
		slog.Int64("owner_id", ownerID),
		slog.Int64("acting_user_id", actingUserID))
	return apperrors.NewUnauthorizedError(fmt.Sprintf("user %d is not allowed to access this %s", actingUserID, resource))
}

// ValidateDateRange rejects ranges that start in the future or end before they start.
func (s *BaseService) ValidateDateRange(start, end time.Time) error {
	if start.After(s.Now()) {
		return apperrors.NewValidationError("start date cannot be in the future")
	}
	if end.Before(start) {
		return apperrors.NewValidationError("start date cannot be after end date")
	}
	return nil
}
