package api

import (
	"net/http"

	"github.com/pageturnapp/pageturn-server/internal/http/response"
)

// handleRewindSummary returns the full reading recap for the
// authenticated user.
func (s *Server) handleRewindSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	summary, err := s.rewindService.Summary(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to build rewind summary", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, summary, s.logger)
}

// handleRewindTotals returns just the headline totals, served from the
// precomputed snapshot.
func (s *Server) handleRewindTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	totals, err := s.rewindService.Totals(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load rewind totals", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, totals, s.logger)
}
