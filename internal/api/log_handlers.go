package api

import (
	"net/http"

	"github.com/pageturnapp/pageturn-server/internal/api/dto"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/http/response"
)

// handleCreateLog records pages read by the authenticated user.
func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req dto.CreateLogRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		response.BadRequest(w, validationMessage(err), s.logger)
		return
	}

	log := &domain.ReadingLog{
		UserID:    userID,
		BookID:    req.BookID,
		PagesRead: req.PagesRead,
	}
	if req.CreatedAt != nil {
		log.CreatedAt = *req.CreatedAt
	}

	if err := s.logService.AddLog(ctx, log); err != nil {
		s.logger.Error("Failed to record reading log", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, log, s.logger)
}

// handleListLogs returns the user's reading logs, most pages first.
func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	logs, err := s.logService.Logs(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list reading logs", "error", err, "user_id", userID)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, logs, s.logger)
}
