package handler

import (
	"errors"
	"net/http"

	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/web/middleware/auth"
	"github.com/quartzlab/tipboard/internal/web/middleware/guestname"
	"github.com/quartzlab/tipboard/internal/web/session"
	"github.com/quartzlab/tipboard/internal/web/templates"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AuthHandler serves login, registration, and logout.
type AuthHandler struct {
	db       database.Client
	sessions *session.Store
	renderer *templates.Renderer
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	db database.Client,
	sessions *session.Store,
	renderer *templates.Renderer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// ShowLogin renders the login form. Authenticated users are sent home.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, req bunrouter.Request) error {
	if auth.FromContext(req.Context()) != nil {
		http.Redirect(w, req.Request, "/", http.StatusFound)
		return nil
	}

	return h.renderer.Render(w, "login.html", templates.AuthData{
		Username: guestname.FromContext(req.Context()),
	})
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, req bunrouter.Request) error {
	if auth.FromContext(req.Context()) != nil {
		http.Redirect(w, req.Request, "/", http.StatusFound)
		return nil
	}

	username := req.PostFormValue("username")
	password := req.PostFormValue("password")

	user, err := h.db.Service().Auth().Authenticate(req.Context(), username, password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			return h.renderer.Render(w, "login.html", templates.AuthData{
				Username: guestname.FromContext(req.Context()),
				Error:    "Invalid username or password",
			})
		}

		h.logger.Error("Failed to authenticate user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return h.startSession(w, req, user)
}

// ShowRegistration renders the registration form. Authenticated users are
// sent home.
func (h *AuthHandler) ShowRegistration(w http.ResponseWriter, req bunrouter.Request) error {
	if auth.FromContext(req.Context()) != nil {
		http.Redirect(w, req.Request, "/", http.StatusFound)
		return nil
	}

	return h.renderer.Render(w, "registration.html", templates.AuthData{
		Username: guestname.FromContext(req.Context()),
	})
}

// Register creates an account and logs the new user in. Validation
// failures re-render the form with a message.
func (h *AuthHandler) Register(w http.ResponseWriter, req bunrouter.Request) error {
	if auth.FromContext(req.Context()) != nil {
		http.Redirect(w, req.Request, "/", http.StatusFound)
		return nil
	}

	username := req.PostFormValue("username")
	password := req.PostFormValue("password")
	passwordConfirm := req.PostFormValue("password_confirm")

	guest := guestname.FromContext(req.Context())

	if password != passwordConfirm {
		return h.renderer.Render(w, "registration.html", templates.AuthData{
			Username: guest,
			Error:    "Passwords do not match",
		})
	}

	user, err := h.db.Service().Auth().Register(req.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrEmptyUsername):
			return h.renderer.Render(w, "registration.html", templates.AuthData{
				Username: guest,
				Error:    "Empty username field",
			})
		case errors.Is(err, types.ErrUsernameTaken):
			return h.renderer.Render(w, "registration.html", templates.AuthData{
				Username: guest,
				Error:    "Username already taken",
			})
		default:
			h.logger.Error("Failed to register user", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)

			return nil
		}
	}

	return h.startSession(w, req, user)
}

// Logout ends the session. Anonymous requests are sent to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, req bunrouter.Request) error {
	if auth.FromContext(req.Context()) == nil {
		http.Redirect(w, req.Request, "/login", http.StatusFound)
		return nil
	}

	if token := h.sessions.TokenFromRequest(req.Request); token != "" {
		if err := h.sessions.Destroy(req.Context(), token); err != nil {
			h.logger.Error("Failed to destroy session", zap.Error(err))
		}
	}

	h.sessions.ClearCookie(w)
	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}

// startSession creates a session for the user and redirects home.
func (h *AuthHandler) startSession(w http.ResponseWriter, req bunrouter.Request, user *types.User) error {
	token, err := h.sessions.Create(req.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	h.sessions.SetCookie(w, token)
	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}
