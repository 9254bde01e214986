// Package dto provides request and response types for the PageTurn API.
package dto

import "time"

// CreateBookRequest is the request body for adding a book to the library.
type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required,max=512"`
	Author      string   `json:"author,omitempty" validate:"max=256"`
	ISBN        string   `json:"isbn,omitempty" validate:"max=32"`
	Genre       string   `json:"genre,omitempty" validate:"max=128"`
	CoverImage  string   `json:"cover_image,omitempty" validate:"omitempty,url"`
	Description string   `json:"description,omitempty"`
	UserRating  *float64 `json:"user_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// CreateLogRequest is the request body for recording reading activity.
type CreateLogRequest struct {
	BookID    string     `json:"book_id,omitempty"`
	PagesRead int        `json:"pages_read" validate:"gte=0"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message"`
}
