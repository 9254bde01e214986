package domain

import (
	"slices"
	"strings"
)

// Totals is the headline pair of Rewind numbers.
type Totals struct {
	TotalBooks     int `json:"total_books"`
	TotalPagesRead int `json:"total_pages_read"`
}

// AuthorCount is one entry in the top-authors ranking.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// SubjectFrequencies holds subject/genre occurrence counts split by
// provenance: tags the user entered on their own library rows versus subjects
// returned by external metadata lookups. Keys are normalized via
// NormalizeSubject before insertion so the two tables merge cleanly.
type SubjectFrequencies struct {
	FromLibrary  map[string]int `json:"from_library"`
	FromMetadata map[string]int `json:"from_metadata"`
}

// NewSubjectFrequencies returns an empty pair of frequency tables.
func NewSubjectFrequencies() *SubjectFrequencies {
	return &SubjectFrequencies{
		FromLibrary:  make(map[string]int),
		FromMetadata: make(map[string]int),
	}
}

// Empty reports whether both tables are empty.
func (f *SubjectFrequencies) Empty() bool {
	return len(f.FromLibrary) == 0 && len(f.FromMetadata) == 0
}

// Merged returns a single table with counts from both sources summed.
func (f *SubjectFrequencies) Merged() map[string]int {
	merged := make(map[string]int, len(f.FromLibrary)+len(f.FromMetadata))
	for subject, count := range f.FromLibrary {
		merged[subject] += count
	}
	for subject, count := range f.FromMetadata {
		merged[subject] += count
	}
	return merged
}

// NormalizeSubject lower-cases and trims a subject/genre tag so variants like
// "Fantasy" and "fantasy " collapse to one key.
func NormalizeSubject(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RewindSummary is the aggregated statistics view returned to the
// presentation layer. Personality fields are empty when classification was
// skipped or failed; Warnings carries the user-visible reasons.
type RewindSummary struct {
	Totals
	MostPagesLog           *ReadingLog         `json:"most_pages_log,omitempty"`
	TopAuthors             []AuthorCount       `json:"top_authors"`
	TopRatedBooks          []*Book             `json:"top_rated_books"`
	Subjects               *SubjectFrequencies `json:"subjects,omitempty"`
	PersonalityLabel       string              `json:"personality_label,omitempty"`
	PersonalityDescription string              `json:"personality_description,omitempty"`
	Warnings               []string            `json:"warnings,omitempty"`
}

// BookAndPageTotals assembles the headline totals from a book count and
// the user's logs.
func BookAndPageTotals(totalBooks int, logs []*ReadingLog) Totals {
	return Totals{
		TotalBooks:     totalBooks,
		TotalPagesRead: TotalPages(logs),
	}
}

// TotalPages sums pages across logs. A missing or empty slice yields 0.
func TotalPages(logs []*ReadingLog) int {
	total := 0
	for _, l := range logs {
		if l == nil || l.PagesRead < 0 {
			continue
		}
		total += l.PagesRead
	}
	return total
}

// MostPagesLog returns the log with the highest page count, or nil if there
// are no logs. Ties are broken by CreatedAt: the most recent entry wins, so
// the result is deterministic regardless of input order.
func MostPagesLog(logs []*ReadingLog) *ReadingLog {
	var best *ReadingLog
	for _, l := range logs {
		if l == nil {
			continue
		}
		switch {
		case best == nil:
			best = l
		case l.PagesRead > best.PagesRead:
			best = l
		case l.PagesRead == best.PagesRead && l.CreatedAt.After(best.CreatedAt):
			best = l
		}
	}
	return best
}

// TopAuthors counts books per author and returns up to n entries sorted by
// count descending. Books without an author are skipped. The sort is stable,
// so authors tied on count keep their first-seen order.
//
// Author strings are matched exactly (no case folding): names are displayed
// as entered, and "bell hooks" is not the same author as "Bell Hooks".
func TopAuthors(books []*Book, n int) []AuthorCount {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string // first-seen order, for stable ties

	for _, b := range books {
		if b == nil {
			continue
		}
		author := strings.TrimSpace(b.Author)
		if author == "" {
			continue
		}
		if _, seen := counts[author]; !seen {
			order = append(order, author)
		}
		counts[author]++
	}

	ranked := make([]AuthorCount, 0, len(order))
	for _, author := range order {
		ranked = append(ranked, AuthorCount{Author: author, Count: counts[author]})
	}

	slices.SortStableFunc(ranked, func(a, b AuthorCount) int {
		return b.Count - a.Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopRatedBooks returns up to n books sorted by user rating descending.
// Unrated books are excluded. The sort is stable, so books tied on rating
// keep their original order.
func TopRatedBooks(books []*Book, n int) []*Book {
	if n <= 0 {
		return nil
	}

	rated := make([]*Book, 0, len(books))
	for _, b := range books {
		if b == nil || !b.Rated() {
			continue
		}
		rated = append(rated, b)
	}

	slices.SortStableFunc(rated, func(a, b *Book) int {
		switch {
		case *b.UserRating > *a.UserRating:
			return 1
		case *b.UserRating < *a.UserRating:
			return -1
		default:
			return 0
		}
	})

	if len(rated) > n {
		rated = rated[:n]
	}
	return rated
}
