package isbndb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New("test-key", slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL
	t.Cleanup(client.Close)

	return client
}

func TestGetBook(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		statusCode   int
		wantSubjects []string
		wantErr      error
	}{
		{
			name:         "successful lookup",
			response:     `{"book": {"title": "Dune", "authors": ["Frank Herbert"], "subjects": ["Science Fiction", "Classics"]}}`,
			statusCode:   http.StatusOK,
			wantSubjects: []string{"Science Fiction", "Classics"},
		},
		{
			name:         "book without subjects",
			response:     `{"book": {"title": "Obscure", "authors": []}}`,
			statusCode:   http.StatusOK,
			wantSubjects: nil,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantErr:    ErrNotFound,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrServer,
		},
		{
			name:       "malformed response",
			response:   `{"book": not json`,
			statusCode: http.StatusOK,
			wantErr:    nil, // decode error, checked below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/book/9780441013593", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("Authorization"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			})

			book, err := client.GetBook(context.Background(), "9780441013593")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.name == "malformed response" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubjects, book.Subjects)
		})
	}
}

func TestGetBook_ErrorCarriesContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBook(context.Background(), "0000000000")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "getBook", apiErr.Op)
	assert.Equal(t, "0000000000", apiErr.ISBN)
}

func TestGetBook_EmptyISBN(t *testing.T) {
	client := New("test-key", slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer client.Close()

	_, err := client.GetBook(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidISBN)
}

func TestGetBook_NoAPIKey(t *testing.T) {
	client := New("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer client.Close()

	assert.False(t, client.Enabled())

	_, err := client.GetBook(context.Background(), "9780441013593")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSubjects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"book": {"subjects": ["Fantasy"]}}`))
	})

	subjects, err := client.Subjects(context.Background(), "9780441013593")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy"}, subjects)
}
