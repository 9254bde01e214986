package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pageturnapp/pageturn-server/internal/domain"
)

// SubjectSource looks up subject tags for a single ISBN against an
// external metadata provider.
type SubjectSource interface {
	// Enabled reports whether the source is configured for lookups.
	Enabled() bool
	// Subjects returns the subject tags recorded for the ISBN.
	Subjects(ctx context.Context, isbn string) ([]string, error)
}

// defaultLookupConcurrency bounds the per-ISBN fan-out when the
// configured value is missing or invalid.
const defaultLookupConcurrency = 4

// SubjectResolver builds subject frequency tables for a library: genre
// tags the user entered, plus subjects fetched per ISBN from a
// metadata source.
type SubjectResolver struct {
	source      SubjectSource
	concurrency int
	logger      *slog.Logger
}

// NewSubjectResolver creates a resolver over the given metadata
// source. A nil source disables external lookups.
func NewSubjectResolver(source SubjectSource, concurrency int, logger *slog.Logger) *SubjectResolver {
	if concurrency < 1 {
		concurrency = defaultLookupConcurrency
	}
	return &SubjectResolver{
		source:      source,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Resolve counts genre tags across the library and fans out ISBN
// lookups to the metadata source, at most one lookup per distinct
// ISBN. Lookups that fail are skipped and reported as warnings; the
// returned tables always hold whatever was resolved, including when
// the context is cancelled mid-flight.
func (r *SubjectResolver) Resolve(ctx context.Context, books []*domain.Book) (*domain.SubjectFrequencies, []string) {
	freq := domain.NewSubjectFrequencies()
	var warnings []string

	for _, b := range books {
		if b == nil || !b.HasGenre() {
			continue
		}
		freq.FromLibrary[domain.NormalizeSubject(b.Genre)]++
	}

	isbns := distinctISBNs(books)
	if len(isbns) == 0 {
		return freq, warnings
	}

	if r.source == nil || !r.source.Enabled() {
		r.logger.Debug("metadata subject lookups disabled", "isbn_count", len(isbns))
		return freq, append(warnings, "subject lookups are not configured; showing library genres only")
	}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, isbn := range isbns {
		g.Go(func() error {
			subjects, err := r.source.Subjects(gctx, isbn)
			if err != nil {
				r.logger.Warn("subject lookup failed", "isbn", isbn, "error", err)
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("subject lookup for ISBN %s failed", isbn))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			for _, subject := range subjects {
				if normalized := domain.NormalizeSubject(subject); normalized != "" {
					freq.FromMetadata[normalized]++
				}
			}
			mu.Unlock()
			return nil
		})
	}
	// Lookups never return errors, so Wait only reaps the goroutines.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		warnings = append(warnings, "subject lookups were interrupted; results may be incomplete")
	}

	return freq, warnings
}

// distinctISBNs returns each trimmed non-empty ISBN once, in first-seen
// order.
func distinctISBNs(books []*domain.Book) []string {
	seen := make(map[string]bool)
	var isbns []string
	for _, b := range books {
		if b == nil {
			continue
		}
		isbn := strings.TrimSpace(b.ISBN)
		if isbn == "" || seen[isbn] {
			continue
		}
		seen[isbn] = true
		isbns = append(isbns, isbn)
	}
	return isbns
}
