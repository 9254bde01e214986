package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pageturnapp/pageturn-server/internal/classifier"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

// PersonalityClassifier maps subject frequencies to a taxonomy entry.
type PersonalityClassifier interface {
	Classify(ctx context.Context, freq *domain.SubjectFrequencies) (*classifier.Result, error)
}

// summaryTopN is how many authors and rated books the summary ranks.
const summaryTopN = 3

// RewindService assembles the yearly reading recap: headline totals,
// rankings, subject frequencies, and the classified personality.
type RewindService struct {
	store      *store.Store
	subjects   *SubjectResolver
	classifier PersonalityClassifier
	logger     *slog.Logger
}

// NewRewindService creates a new rewind service. A nil classifier
// disables personality classification; summaries then carry a warning
// instead of a personality.
func NewRewindService(store *store.Store, subjects *SubjectResolver, classifier PersonalityClassifier, logger *slog.Logger) *RewindService {
	return &RewindService{
		store:      store,
		subjects:   subjects,
		classifier: classifier,
		logger:     logger,
	}
}

// Summary builds the full recap for a user. External lookups and
// classification degrade to warnings; only storage failures make the
// summary itself fail.
func (s *RewindService) Summary(ctx context.Context, userID string) (*domain.RewindSummary, error) {
	books, err := s.store.ListBooks(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListLogsByPagesDesc(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Subject resolution fans out network lookups; run it while the
	// in-memory aggregates are computed.
	type resolved struct {
		freq     *domain.SubjectFrequencies
		warnings []string
	}
	subjectsCh := make(chan resolved, 1)
	go func() {
		freq, warnings := s.subjects.Resolve(ctx, books)
		subjectsCh <- resolved{freq, warnings}
	}()

	summary := &domain.RewindSummary{
		Totals:        domain.BookAndPageTotals(len(books), logs),
		MostPagesLog:  domain.MostPagesLog(logs),
		TopAuthors:    domain.TopAuthors(books, summaryTopN),
		TopRatedBooks: domain.TopRatedBooks(books, summaryTopN),
	}

	sub := <-subjectsCh
	summary.Subjects = sub.freq
	summary.Warnings = sub.warnings

	s.classify(ctx, summary)

	s.logger.Info("built rewind summary",
		"user_id", userID,
		"total_books", summary.TotalBooks,
		"total_pages", summary.TotalPagesRead,
		"warnings", len(summary.Warnings),
	)

	return summary, nil
}

// classify fills in the personality fields, downgrading every failure
// mode to a warning.
func (s *RewindService) classify(ctx context.Context, summary *domain.RewindSummary) {
	if s.classifier == nil {
		summary.Warnings = append(summary.Warnings, "personality classification is not configured")
		return
	}

	result, err := s.classifier.Classify(ctx, summary.Subjects)
	switch {
	case err == nil:
		summary.PersonalityLabel = result.Personality
		summary.PersonalityDescription = result.Description
	case errors.Is(err, apperrors.ErrNoSubjects):
		summary.Warnings = append(summary.Warnings, "not enough subject data to classify a reading personality")
	case errors.Is(err, apperrors.ErrClassifierResponse):
		s.logger.Warn("classifier returned an unusable answer", "error", err)
		summary.Warnings = append(summary.Warnings, "personality classification returned an unusable answer")
	default:
		s.logger.Warn("personality classification failed", "error", err)
		summary.Warnings = append(summary.Warnings, "personality classification is temporarily unavailable")
	}
}

// Totals returns the headline numbers from the precomputed snapshot,
// recomputing from live rows when no snapshot exists yet.
func (s *RewindService) Totals(ctx context.Context, userID string) (*domain.Totals, error) {
	totals, err := s.store.GetRewindStats(ctx, userID)
	if err == nil {
		return totals, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	s.logger.Debug("no rewind snapshot, recomputing", "user_id", userID)
	return s.store.RecomputeRewindStats(ctx, userID)
}
