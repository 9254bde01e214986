package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/personality"
)

type fakeOracle struct {
	answer     string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeOracle) Complete(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.answer, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func subjectsOf(pairs map[string]int) *domain.SubjectFrequencies {
	freq := domain.NewSubjectFrequencies()
	for subject, count := range pairs {
		freq.FromLibrary[subject] = count
	}
	return freq
}

func TestClassify(t *testing.T) {
	oracle := &fakeOracle{answer: "2"}
	c := New(oracle, testLogger())

	result, err := c.Classify(context.Background(), subjectsOf(map[string]int{"mystery": 4}))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Index)
	assert.Equal(t, personality.Default[2].Personality, result.Personality)
	assert.Equal(t, personality.Default[2].Description, result.Description)
	assert.Equal(t, 1, oracle.calls)
	assert.Contains(t, oracle.lastPrompt, "mystery (4)")
	assert.Contains(t, oracle.lastPrompt, "Respond with only the index")
}

func TestClassifyTrimsAnswer(t *testing.T) {
	oracle := &fakeOracle{answer: " 0\n"}
	c := New(oracle, testLogger())

	result, err := c.Classify(context.Background(), subjectsOf(map[string]int{"fantasy": 1}))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Index)
	assert.Equal(t, personality.Default[0].Personality, result.Personality)
}

func TestClassifyNoSubjects(t *testing.T) {
	oracle := &fakeOracle{answer: "0"}
	c := New(oracle, testLogger())

	_, err := c.Classify(context.Background(), domain.NewSubjectFrequencies())
	assert.ErrorIs(t, err, apperrors.ErrNoSubjects)
	assert.Zero(t, oracle.calls, "oracle must not be consulted without subjects")

	_, err = c.Classify(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNoSubjects)
	assert.Zero(t, oracle.calls)
}

func TestClassifyInvalidAnswers(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"not a number", "The Escapist"},
		{"negative", "-1"},
		{"out of range", "99"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&fakeOracle{answer: tt.answer}, testLogger())

			_, err := c.Classify(context.Background(), subjectsOf(map[string]int{"horror": 2}))
			assert.ErrorIs(t, err, apperrors.ErrClassifierResponse)
		})
	}
}

func TestClassifyOracleFailure(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("connection refused")}
	c := New(oracle, testLogger())

	_, err := c.Classify(context.Background(), subjectsOf(map[string]int{"horror": 2}))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrClassifierResponse)
}

func TestFormatSubjects(t *testing.T) {
	freq := domain.NewSubjectFrequencies()
	freq.FromLibrary["fantasy"] = 2
	freq.FromLibrary["mystery"] = 5
	freq.FromMetadata["fantasy"] = 10
	freq.FromMetadata["ambient"] = 5

	assert.Equal(t, "fantasy (12), ambient (5), mystery (5)", FormatSubjects(freq))
}

func TestFormatSubjectsEmpty(t *testing.T) {
	assert.Empty(t, FormatSubjects(domain.NewSubjectFrequencies()))
}

func TestBuildPromptEnumeratesTaxonomy(t *testing.T) {
	c := New(&fakeOracle{}, testLogger())

	prompt := c.BuildPrompt("fantasy (3)")
	for i, entry := range personality.Default {
		assert.Contains(t, prompt, entry.Personality, "entry %d missing", i)
	}
	assert.Contains(t, prompt, "fantasy (3)")
}
