// Package domain contains the core business entities and aggregation logic for the PageTurn library.
package domain

import (
	"strings"
	"time"
)

// Book represents a book in a user's library.
//
// Author follows the first-author convention: a single display string as
// entered by the user or returned by metadata lookup. Rating, Genre, ISBN and
// the image fields are optional; absent values are represented as nil or the
// empty string, never as sentinel numbers.
type Book struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Description string    `json:"description,omitempty"`
	UserRating  *float64  `json:"user_rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasGenre reports whether the book carries a usable genre tag.
func (b *Book) HasGenre() bool {
	return strings.TrimSpace(b.Genre) != ""
}

// HasISBN reports whether the book carries a usable ISBN.
func (b *Book) HasISBN() bool {
	return strings.TrimSpace(b.ISBN) != ""
}

// Rated reports whether the user has rated the book.
func (b *Book) Rated() bool {
	return b.UserRating != nil
}
