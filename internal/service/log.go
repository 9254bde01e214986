package service

import (
	"context"
	"log/slog"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

// LogService records reading activity.
type LogService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewLogService creates a new reading log service.
func NewLogService(store *store.Store, logger *slog.Logger) *LogService {
	return &LogService{
		store:  store,
		logger: logger,
	}
}

// AddLog records pages read by a user, optionally against a book in
// their library. The passed log is updated with the generated ID and
// creation time.
func (s *LogService) AddLog(ctx context.Context, log *domain.ReadingLog) error {
	if log.UserID == "" {
		return apperrors.Validation("log user is required")
	}
	if log.PagesRead < 0 {
		return apperrors.Validationf("pages read cannot be negative, got %d", log.PagesRead)
	}

	if log.BookID != "" {
		if _, err := s.store.GetBook(ctx, log.BookID, log.UserID); err != nil {
			return err
		}
	}

	if err := s.store.CreateLog(ctx, log); err != nil {
		return err
	}

	// Keep the snapshot's page total current.
	if _, err := s.store.RecomputeRewindStats(ctx, log.UserID); err != nil {
		s.logger.Warn("failed to refresh rewind snapshot", "user_id", log.UserID, "error", err)
	}

	s.logger.Info("reading log recorded",
		"log_id", log.ID,
		"user_id", log.UserID,
		"book_id", log.BookID,
		"pages", log.PagesRead,
	)
	return nil
}

// Logs lists a user's reading logs ordered by pages read descending.
func (s *LogService) Logs(ctx context.Context, userID string) ([]*domain.ReadingLog, error) {
	return s.store.ListLogsByPagesDesc(ctx, userID)
}
