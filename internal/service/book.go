package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	apperrors "github.com/pageturnapp/pageturn-server/internal/errors"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

// BookService manages a user's library of books.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// AddBook stores a book in the user's library. A book with the same
// title for the same user updates the existing row in place instead of
// creating a duplicate. The passed book is updated with the canonical
// ID and timestamps.
func (s *BookService) AddBook(ctx context.Context, book *domain.Book) error {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" {
		return apperrors.Validation("book title is required")
	}
	if book.UserID == "" {
		return apperrors.Validation("book user is required")
	}
	if book.UserRating != nil && (*book.UserRating < 0 || *book.UserRating > 5) {
		return apperrors.Validationf("rating %.1f is out of range 0-5", *book.UserRating)
	}

	if err := s.store.UpsertBook(ctx, book); err != nil {
		return err
	}

	// Keep the snapshot's book count current.
	if _, err := s.store.RecomputeRewindStats(ctx, book.UserID); err != nil {
		s.logger.Warn("failed to refresh rewind snapshot", "user_id", book.UserID, "error", err)
	}

	s.logger.Info("book saved", "book_id", book.ID, "user_id", book.UserID, "title", book.Title)
	return nil
}

// GetBook returns a single book from the user's library.
func (s *BookService) GetBook(ctx context.Context, bookID, userID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID, userID)
}

// Library lists all books in the user's library in insertion order.
func (s *BookService) Library(ctx context.Context, userID string) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx, userID)
}
