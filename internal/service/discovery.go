package service

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/metadata/openlibrary"
)

// WorkSearcher finds works matching a free-text query.
type WorkSearcher interface {
	Search(ctx context.Context, query string) ([]openlibrary.Work, error)
}

// DiscoveryService suggests books to add to a library by searching an
// external catalog.
type DiscoveryService struct {
	searcher WorkSearcher
	limit    int
	logger   *slog.Logger
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(searcher WorkSearcher, limit int, logger *slog.Logger) *DiscoveryService {
	return &DiscoveryService{
		searcher: searcher,
		limit:    limit,
		logger:   logger,
	}
}

// Search returns up to the configured number of catalog works matching
// the query.
func (s *DiscoveryService) Search(ctx context.Context, query string) ([]openlibrary.Work, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("search query is required")
	}

	works, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.Warn("discovery search failed", "query", query, "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "book discovery is temporarily unavailable")
	}

	if s.limit > 0 && len(works) > s.limit {
		works = works[:s.limit]
	}

	s.logger.Debug("discovery search", "query", query, "results", len(works))
	return works, nil
}
