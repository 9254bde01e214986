package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageturnapp/pageturn-server/internal/classifier"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

type fakeClassifier struct {
	result *classifier.Result
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _ *domain.SubjectFrequencies) (*classifier.Result, error) {
	f.calls++
	return f.result, f.err
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir()+"/test.db", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedLibrary(t *testing.T, s *store.Store, userID string) {
	t.Helper()
	ctx := context.Background()

	rating := func(v float64) *float64 { return &v }
	books := []*domain.Book{
		{UserID: userID, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", ISBN: "111", UserRating: rating(5)},
		{UserID: userID, Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Sci-Fi", UserRating: rating(4)},
		{UserID: userID, Title: "Gone Girl", Author: "Gillian Flynn", Genre: "Thriller"},
	}
	for _, b := range books {
		require.NoError(t, s.UpsertBook(ctx, b))
	}

	logs := []*domain.ReadingLog{
		{UserID: userID, PagesRead: 120, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, PagesRead: 80, CreatedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, l := range logs {
		require.NoError(t, s.CreateLog(ctx, l))
	}
}

func newRewindService(t *testing.T, s *store.Store, source SubjectSource, c PersonalityClassifier) *RewindService {
	t.Helper()
	resolver := NewSubjectResolver(source, 4, testLogger())
	return NewRewindService(s, resolver, c, testLogger())
}

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s, "user-1")

	source := newFakeSubjectSource()
	source.subjects["111"] = []string{"Space Opera"}
	fc := &fakeClassifier{result: &classifier.Result{
		Index:       0,
		Personality: "The Escapist",
		Description: "You read to live a thousand other lives.",
	}}

	svc := newRewindService(t, s, source, fc)

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalBooks)
	assert.Equal(t, 200, summary.TotalPagesRead)

	require.NotNil(t, summary.MostPagesLog)
	assert.Equal(t, 120, summary.MostPagesLog.PagesRead)

	require.Len(t, summary.TopAuthors, 2)
	assert.Equal(t, domain.AuthorCount{Author: "Frank Herbert", Count: 2}, summary.TopAuthors[0])

	require.Len(t, summary.TopRatedBooks, 2)
	assert.Equal(t, "Dune", summary.TopRatedBooks[0].Title)

	require.NotNil(t, summary.Subjects)
	assert.Equal(t, map[string]int{"sci-fi": 2, "thriller": 1}, summary.Subjects.FromLibrary)
	assert.Equal(t, map[string]int{"space opera": 1}, summary.Subjects.FromMetadata)

	assert.Equal(t, "The Escapist", summary.PersonalityLabel)
	assert.Equal(t, "You read to live a thousand other lives.", summary.PersonalityDescription)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 1, fc.calls)
}

func TestSummaryEmptyLibrary(t *testing.T) {
	s := newTestStore(t)

	svc := newRewindService(t, s, newFakeSubjectSource(), &fakeClassifier{err: apperrors.ErrNoSubjects})

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalBooks)
	assert.Zero(t, summary.TotalPagesRead)
	assert.Nil(t, summary.MostPagesLog)
	assert.Empty(t, summary.TopAuthors)
	assert.Empty(t, summary.TopRatedBooks)
	assert.Empty(t, summary.PersonalityLabel)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "not enough subject data")
}

func TestSummaryClassifierUnavailable(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s, "user-1")

	fc := &fakeClassifier{err: apperrors.Unavailable("oracle down")}
	svc := newRewindService(t, s, newFakeSubjectSource(), fc)

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err, "classifier failure must not fail the summary")

	assert.Empty(t, summary.PersonalityLabel)
	assert.NotEmpty(t, summary.Warnings)
}

func TestSummaryNoClassifierConfigured(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s, "user-1")

	svc := newRewindService(t, s, newFakeSubjectSource(), nil)

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Empty(t, summary.PersonalityLabel)
	require.NotEmpty(t, summary.Warnings)
	assert.Contains(t, summary.Warnings[len(summary.Warnings)-1], "not configured")
}

func TestSummaryScopedToUser(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s, "user-1")
	seedLibrary(t, s, "user-2")

	svc := newRewindService(t, s, newFakeSubjectSource(), nil)

	summary, err := svc.Summary(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalBooks)
	assert.Equal(t, 200, summary.TotalPagesRead)
}

func TestTotalsFromSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SetRewindStats(ctx, "user-1", domain.Totals{TotalBooks: 7, TotalPagesRead: 900}))

	svc := newRewindService(t, s, newFakeSubjectSource(), nil)

	totals, err := svc.Totals(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Totals{TotalBooks: 7, TotalPagesRead: 900}, totals)
}

func TestTotalsRecomputesWithoutSnapshot(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s, "user-1")

	svc := newRewindService(t, s, newFakeSubjectSource(), nil)

	totals, err := svc.Totals(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Totals{TotalBooks: 3, TotalPagesRead: 200}, totals)
}
