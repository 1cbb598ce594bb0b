package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/web/middleware/auth"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VoteHandler serves the vote toggle routes.
type VoteHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(db database.Client, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		db:     db,
		logger: logger,
	}
}

// Upvote toggles the requester's upvote on a tip. Open to any
// authenticated user; there is deliberately no reputation gate here.
func (h *VoteHandler) Upvote(w http.ResponseWriter, req bunrouter.Request) error {
	voter := auth.FromContext(req.Context())
	if voter == nil {
		http.Redirect(w, req.Request, "/login", http.StatusFound)
		return nil
	}

	tipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid tip ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Vote().Upvote(req.Context(), tipID, voter.ID); err != nil {
		return h.voteError(w, err, "upvote")
	}

	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}

// Downvote toggles the requester's downvote on a tip. Refused with 403
// unless the requester owns the tip or holds the downvote privilege.
func (h *VoteHandler) Downvote(w http.ResponseWriter, req bunrouter.Request) error {
	voter := auth.FromContext(req.Context())
	if voter == nil {
		http.Redirect(w, req.Request, "/login", http.StatusFound)
		return nil
	}

	tipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid tip ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Vote().Downvote(req.Context(), tipID, voter); err != nil {
		if errors.Is(err, types.ErrPermissionDenied) {
			http.Error(w, "You don't have permission to downvote this tip.", http.StatusForbidden)
			return nil
		}

		return h.voteError(w, err, "downvote")
	}

	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}

// voteError maps service errors to client responses.
func (h *VoteHandler) voteError(w http.ResponseWriter, err error, action string) error {
	if errors.Is(err, types.ErrTipNotFound) {
		http.Error(w, "Tip not found", http.StatusNotFound)
		return nil
	}

	h.logger.Error("Failed to apply "+action, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)

	return nil
}
