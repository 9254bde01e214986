package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pageturnapp/pageturn-server/internal/api/dto"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/http/response"
)

// handleListLibrary returns every book in the authenticated user's library.
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	books, err := s.bookService.Library(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list library", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleCreateBook adds a book to the library, updating in place when a
// book with the same title already exists.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req dto.CreateBookRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		response.BadRequest(w, validationMessage(err), s.logger)
		return
	}

	book := &domain.Book{
		UserID:      userID,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		CoverImage:  req.CoverImage,
		Description: req.Description,
		UserRating:  req.UserRating,
	}

	if err := s.bookService.AddBook(ctx, book); err != nil {
		s.logger.Error("Failed to save book", "error", err, "user_id", userID, "title", req.Title)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleGetBook returns a single book from the user's library.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	book, err := s.bookService.GetBook(ctx, bookID, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}
