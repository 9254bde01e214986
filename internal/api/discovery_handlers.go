package api

import (
	"net/http"

	"github.com/pageturnapp/pageturn-server/internal/http/response"
)

// handleDiscover searches the external catalog for books matching the
// subject or keyword in the query string.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("subject")
	if query == "" {
		query = r.URL.Query().Get("q")
	}

	works, err := s.discoveryService.Search(ctx, query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, works, s.logger)
}
