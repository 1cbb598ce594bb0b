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

// TipHandler serves tip deletion.
type TipHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewTipHandler creates a new tip handler.
func NewTipHandler(db database.Client, logger *zap.Logger) *TipHandler {
	return &TipHandler{
		db:     db,
		logger: logger,
	}
}

// Delete removes a tip. Refused with 403 unless the requester owns the
// tip or holds the delete privilege.
func (h *TipHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	requester := auth.FromContext(req.Context())
	if requester == nil {
		http.Redirect(w, req.Request, "/login", http.StatusFound)
		return nil
	}

	tipID, err := strconv.ParseInt(req.Param("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid tip ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Tip().Delete(req.Context(), tipID, requester); err != nil {
		switch {
		case errors.Is(err, types.ErrPermissionDenied):
			http.Error(w, "You don't have permission to delete this tip.", http.StatusForbidden)
		case errors.Is(err, types.ErrTipNotFound):
			http.Error(w, "Tip not found", http.StatusNotFound)
		default:
			h.logger.Error("Failed to delete tip", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}

		return nil
	}

	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}
