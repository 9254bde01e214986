// Package classifier maps a reader's subject frequencies onto one of the
// fixed reading-personality archetypes using a completion oracle.
package classifier

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/personality"
)

// maxAnswerTokens bounds the oracle's reply. The answer is a single
// taxonomy index, so a handful of tokens is plenty.
const maxAnswerTokens = 5

// Classifier picks the personality archetype that best matches a set
// of weighted subject tags.
type Classifier struct {
	oracle   Oracle
	taxonomy []personality.Entry
	logger   *slog.Logger
}

// New creates a Classifier over the default personality taxonomy.
func New(oracle Oracle, logger *slog.Logger) *Classifier {
	return &Classifier{
		oracle:   oracle,
		taxonomy: personality.Default,
		logger:   logger,
	}
}

// Result is a classified reading personality.
type Result struct {
	Index       int    `json:"index"`
	Personality string `json:"personality"`
	Description string `json:"description"`
}

// Classify asks the oracle which taxonomy entry best fits the given
// subject frequencies. It returns ErrNoSubjects without consulting the
// oracle when both frequency tables are empty, and
// ErrClassifierResponse when the oracle answers with something other
// than a valid taxonomy index.
func (c *Classifier) Classify(ctx context.Context, freq *domain.SubjectFrequencies) (*Result, error) {
	if freq == nil || freq.Empty() {
		return nil, apperrors.ErrNoSubjects
	}

	prompt := c.BuildPrompt(FormatSubjects(freq))

	answer, err := c.oracle.Complete(ctx, prompt, maxAnswerTokens)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "classification oracle unavailable")
	}

	index, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return nil, apperrors.ClassifierResponsef("oracle answered %q, expected an index", answer)
	}
	if index < 0 || index >= len(c.taxonomy) {
		return nil, apperrors.ClassifierResponsef("oracle answered index %d, taxonomy has %d entries", index, len(c.taxonomy))
	}

	entry := c.taxonomy[index]
	c.logger.Debug("classified reading personality", "index", index, "personality", entry.Personality)

	return &Result{
		Index:       index,
		Personality: entry.Personality,
		Description: entry.Description,
	}, nil
}

// FormatSubjects renders merged subject frequencies as a deterministic
// comma-separated list, most frequent first and ties broken
// alphabetically, e.g. "fantasy (12), mystery (5)".
func FormatSubjects(freq *domain.SubjectFrequencies) string {
	merged := freq.Merged()

	type weighted struct {
		subject string
		count   int
	}
	entries := make([]weighted, 0, len(merged))
	for subject, count := range merged {
		entries = append(entries, weighted{subject, count})
	}
	slices.SortFunc(entries, func(a, b weighted) int {
		if diff := b.count - a.count; diff != 0 {
			return diff
		}
		return cmp.Compare(a.subject, b.subject)
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d)", e.subject, e.count)
	}
	return strings.Join(parts, ", ")
}

// BuildPrompt enumerates the taxonomy and asks the oracle to answer
// with a bare index.
func (c *Classifier) BuildPrompt(subjects string) string {
	var b strings.Builder
	b.WriteString("Given the subject tags a reader has read, weighted by how often each appears: ")
	b.WriteString(subjects)
	b.WriteString("\n\nPick the index of the reading personality that best fits:\n")
	for i, entry := range c.taxonomy {
		fmt.Fprintf(&b, "%d: %s - %s\n", i, entry.Personality, entry.Description)
	}
	b.WriteString("\nRespond with only the index.")
	return b.String()
}
