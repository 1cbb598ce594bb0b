package handler

import (
	"errors"
	"net/http"

	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/web/middleware/auth"
	"github.com/quartzlab/tipboard/internal/web/middleware/guestname"
	"github.com/quartzlab/tipboard/internal/web/templates"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// HomeHandler serves the board listing and tip creation.
type HomeHandler struct {
	db       database.Client
	renderer *templates.Renderer
	logger   *zap.Logger
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(db database.Client, renderer *templates.Renderer, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		db:       db,
		renderer: renderer,
		logger:   logger,
	}
}

// Show renders the board, newest tips first. Anonymous visitors get a
// read-only view under their guest display name.
func (h *HomeHandler) Show(w http.ResponseWriter, req bunrouter.Request) error {
	viewer := auth.FromContext(req.Context())

	tips, err := h.db.Service().Tip().List(req.Context(), viewer)
	if err != nil {
		h.logger.Error("Failed to list tips", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	data := templates.HomeData{Tips: tips}

	if viewer != nil {
		data.Username = viewer.Username
		data.Authenticated = true
		data.ViewerID = viewer.ID
		data.CanDownvote = viewer.CanDownvote()
		data.CanDelete = viewer.CanDeleteTips()
	} else {
		data.Username = guestname.FromContext(req.Context())
	}

	return h.renderer.Render(w, "home.html", data)
}

// Create posts a new tip for the authenticated user. Anonymous and blank
// submissions are silently dropped, mirroring the read-only board view.
func (h *HomeHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	viewer := auth.FromContext(req.Context())
	if viewer == nil {
		http.Redirect(w, req.Request, "/", http.StatusFound)
		return nil
	}

	content := req.PostFormValue("content")

	if _, err := h.db.Service().Tip().Create(req.Context(), viewer.ID, content); err != nil {
		if !errors.Is(err, types.ErrEmptyContent) {
			h.logger.Error("Failed to create tip", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)

			return nil
		}
	}

	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}
