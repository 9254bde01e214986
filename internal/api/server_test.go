package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageturnapp/pageturn-server/internal/auth"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/http/response"
	"github.com/pageturnapp/pageturn-server/internal/metadata/openlibrary"
	"github.com/pageturnapp/pageturn-server/internal/service"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

type fakeSearcher struct {
	works []openlibrary.Work
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]openlibrary.Work, error) {
	return f.works, nil
}

type testEnv struct {
	server *Server
	store  *store.Store
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.Open(t.TempDir()+"/test.db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)

	resolver := service.NewSubjectResolver(nil, 4, logger)
	books := service.NewBookService(s, logger)
	logs := service.NewLogService(s, logger)
	rewind := service.NewRewindService(s, resolver, nil, logger)
	discovery := service.NewDiscoveryService(&fakeSearcher{works: []openlibrary.Work{{Title: "Dune"}}}, 8, logger)

	return &testEnv{
		server: NewServer(books, logs, rewind, discovery, tokens, logger),
		store:  s,
		tokens: tokens,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthCheckIsPublic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestAPIRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/library", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/library", "not-a-valid-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndListBooks(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1")

	rec := env.request(t, http.MethodPost, "/api/v1/books", token,
		`{"title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi", "user_rating": 4.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/v1/library", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var books []*domain.Book
	env.decodeData(t, rec, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "user-1", books[0].UserID)
}

// decodeData unwraps the envelope's data field into dst.
func (e *testEnv) decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data    jsontext.Value `json:"data"`
		Success bool           `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestCreateBookValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1")

	rec := env.request(t, http.MethodPost, "/api/v1/books", token, `{"author": "No Title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/v1/books", token, `{"title": "Dune", "user_rating": 9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/v1/books", token, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLibraryScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/books", env.token(t, "user-1"), `{"title": "Dune"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/library", env.token(t, "user-2"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var books []*domain.Book
	env.decodeData(t, rec, &books)
	assert.Empty(t, books)
}

func TestGetBookNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/books/book-missing", env.token(t, "user-1"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateLogAndRewind(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1")

	rec := env.request(t, http.MethodPost, "/api/v1/books", token, `{"title": "Dune", "author": "Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/v1/logs", token, `{"pages_read": 120}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = env.request(t, http.MethodPost, "/api/v1/logs", token, `{"pages_read": 80}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/rewind", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.RewindSummary
	env.decodeData(t, rec, &summary)
	assert.Equal(t, 1, summary.TotalBooks)
	assert.Equal(t, 200, summary.TotalPagesRead)
	require.NotNil(t, summary.MostPagesLog)
	assert.Equal(t, 120, summary.MostPagesLog.PagesRead)

	rec = env.request(t, http.MethodGet, "/api/v1/rewind/totals", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var totals domain.Totals
	env.decodeData(t, rec, &totals)
	assert.Equal(t, domain.Totals{TotalBooks: 1, TotalPagesRead: 200}, totals)
}

func TestCreateLogValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1")

	rec := env.request(t, http.MethodPost, "/api/v1/logs", token, `{"pages_read": -5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/v1/logs", token, `{"pages_read": 10, "book_id": "book-missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDiscover(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user-1")

	rec := env.request(t, http.MethodGet, "/api/v1/discover?subject=dune", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var works []openlibrary.Work
	env.decodeData(t, rec, &works)
	require.Len(t, works, 1)
	assert.Equal(t, "Dune", works[0].Title)

	rec = env.request(t, http.MethodGet, "/api/v1/discover", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
