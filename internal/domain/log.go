package domain

import "time"

// ReadingLog records a single reading session: how many pages the user read,
// and optionally which book the session belonged to.
//
// Logs are immutable once created. BookID is empty for unassociated sessions.
type ReadingLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id,omitempty"`
	PagesRead int       `json:"pages_read"`
	CreatedAt time.Time `json:"created_at"`
}
