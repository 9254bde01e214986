package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/id"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, user_id, title, author, isbn, genre,
	cover_image, description, user_rating, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
// Nullable columns are defaulted at this boundary: text fields become "",
// a NULL rating becomes a nil pointer.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		author      sql.NullString
		isbn        sql.NullString
		genre       sql.NullString
		coverImage  sql.NullString
		description sql.NullString
		rating      sql.NullFloat64
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&author,
		&isbn,
		&genre,
		&coverImage,
		&description,
		&rating,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Author = author.String
	b.ISBN = isbn.String
	b.Genre = genre.String
	b.CoverImage = coverImage.String
	b.Description = description.String
	if rating.Valid {
		r := rating.Float64
		b.UserRating = &r
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// UpsertBook inserts a book or updates the existing row with the same
// (user_id, title) identity. On update the original id and created_at are
// preserved; the book's ID field is set to the stored row's ID either way.
func (s *Store) UpsertBook(ctx context.Context, book *domain.Book) error {
	if book.UserID == "" {
		return ErrInvalidInput.WithCause(errors.New("book has no user id"))
	}
	if strings.TrimSpace(book.Title) == "" {
		return ErrInvalidInput.WithCause(errors.New("book has no title"))
	}

	now := time.Now()
	if book.ID == "" {
		bookID, err := id.Generate("book")
		if err != nil {
			return err
		}
		book.ID = bookID
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			id, user_id, title, author, isbn, genre,
			cover_image, description, user_rating, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, title) DO UPDATE SET
			author = excluded.author,
			isbn = excluded.isbn,
			genre = excluded.genre,
			cover_image = excluded.cover_image,
			description = excluded.description,
			user_rating = excluded.user_rating,
			updated_at = excluded.updated_at`,
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		nullString(book.ISBN),
		nullString(book.Genre),
		nullString(book.CoverImage),
		nullString(book.Description),
		nullFloat(book.UserRating),
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
	)
	if err != nil {
		return err
	}

	// On conflict the stored row keeps its original id; read it back so the
	// caller always sees the canonical identity.
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM books WHERE user_id = ? AND title = ?`,
		book.UserID, book.Title,
	)
	var createdAt string
	if err := row.Scan(&book.ID, &createdAt); err != nil {
		return err
	}
	book.CreatedAt, err = parseTime(createdAt)
	return err
}

// GetBook fetches a single book scoped to the user.
// Returns ErrNotFound when no such row exists for this user.
func (s *Store) GetBook(ctx context.Context, bookID, userID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ? AND user_id = ?`,
		bookID, userID,
	)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns all books for the user in insertion order.
func (s *Store) ListBooks(ctx context.Context, userID string) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// CountBooks returns the number of books in the user's library.
func (s *Store) CountBooks(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE user_id = ?`,
		userID,
	).Scan(&count)
	return count, err
}
