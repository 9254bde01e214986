package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pageturnapp/pageturn-server/internal/domain"
)

// GetRewindStats returns the cached totals snapshot for a user.
// Returns ErrNotFound when no snapshot has been written yet; callers fall
// back to computing totals live.
func (s *Store) GetRewindStats(ctx context.Context, userID string) (*domain.Totals, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT total_books_read, total_pages_read FROM rewind_stats WHERE user_id = ?`,
		userID,
	)

	var t domain.Totals
	err := row.Scan(&t.TotalBooks, &t.TotalPagesRead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetRewindStats writes the totals snapshot for a user, replacing any
// previous row. Last writer wins; the snapshot is a cache, the logs and
// books tables stay authoritative.
func (s *Store) SetRewindStats(ctx context.Context, userID string, totals domain.Totals) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rewind_stats (user_id, total_books_read, total_pages_read, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_books_read = excluded.total_books_read,
			total_pages_read = excluded.total_pages_read,
			updated_at = excluded.updated_at`,
		userID,
		totals.TotalBooks,
		totals.TotalPagesRead,
		formatTime(time.Now()),
	)
	return err
}

// RecomputeRewindStats rebuilds the snapshot from the authoritative tables
// and stores it. Returns the fresh totals.
func (s *Store) RecomputeRewindStats(ctx context.Context, userID string) (*domain.Totals, error) {
	var t domain.Totals

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE user_id = ?`,
		userID,
	).Scan(&t.TotalBooks)
	if err != nil {
		return nil, err
	}

	// COALESCE: a user with no logs sums to NULL, which must read as 0.
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(pages_read), 0) FROM reading_logs WHERE user_id = ?`,
		userID,
	).Scan(&t.TotalPagesRead)
	if err != nil {
		return nil, err
	}

	if err := s.SetRewindStats(ctx, userID, t); err != nil {
		return nil, err
	}
	return &t, nil
}
