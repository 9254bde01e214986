package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/id"
)

const logColumns = `id, user_id, book_id, pages_read, created_at`

// scanLog scans a row into a domain.ReadingLog.
// A NULL book_id becomes ""; a NULL pages_read becomes 0.
func scanLog(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingLog, error) {
	var l domain.ReadingLog

	var (
		bookID    sql.NullString
		pages     sql.NullInt64
		createdAt string
	)

	err := scanner.Scan(&l.ID, &l.UserID, &bookID, &pages, &createdAt)
	if err != nil {
		return nil, err
	}

	l.BookID = bookID.String
	l.PagesRead = int(pages.Int64)

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateLog inserts a new reading log. Logs are immutable once written.
// The created_at timestamp is assigned here unless the caller set one
// (tests and seeding need deterministic timestamps).
func (s *Store) CreateLog(ctx context.Context, log *domain.ReadingLog) error {
	if log.UserID == "" {
		return ErrInvalidInput.WithCause(errors.New("log has no user id"))
	}
	if log.PagesRead < 0 {
		return ErrInvalidInput.WithCause(errors.New("pages read cannot be negative"))
	}

	if log.ID == "" {
		logID, err := id.Generate("log")
		if err != nil {
			return err
		}
		log.ID = logID
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_logs (id, user_id, book_id, pages_read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		log.ID,
		log.UserID,
		nullString(log.BookID),
		log.PagesRead,
		formatTime(log.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrInvalidInput.WithCause(err)
		}
		return err
	}
	return nil
}

// ListLogsByPagesDesc returns all of the user's reading logs ordered by
// pages_read descending, ties by created_at descending. The first entry is
// therefore the "most pages" candidate the Rewind screens lead with.
func (s *Store) ListLogsByPagesDesc(ctx context.Context, userID string) ([]*domain.ReadingLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+logColumns+` FROM reading_logs
		WHERE user_id = ?
		ORDER BY pages_read DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.ReadingLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
