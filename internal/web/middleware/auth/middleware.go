package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/web/session"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type userCtxKey struct{}

// FromContext retrieves the authenticated user from the context.
// Returns nil for anonymous requests.
func FromContext(ctx context.Context) *types.User {
	if user, ok := ctx.Value(userCtxKey{}).(*types.User); ok {
		return user
	}

	return nil
}

// Middleware resolves the session cookie to a user account and stores it
// in the request context. Requests without a valid session continue as
// anonymous.
type Middleware struct {
	db       database.Client
	sessions *session.Store
	logger   *zap.Logger
}

// New creates a new auth middleware.
func New(db database.Client, sessions *session.Store, logger *zap.Logger) *Middleware {
	return &Middleware{
		db:       db,
		sessions: sessions,
		logger:   logger.Named("auth_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for session resolution.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		token := m.sessions.TokenFromRequest(req.Request)
		if token == "" {
			return next(w, req)
		}

		userID, ok, err := m.sessions.UserID(req.Context(), token)
		if err != nil {
			m.logger.Error("Failed to resolve session", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return nil
		}

		if !ok {
			// Stale cookie referencing an expired session
			m.sessions.ClearCookie(w)
			return next(w, req)
		}

		user, err := m.db.Model().User().GetByID(req.Context(), userID)
		if err != nil {
			if errors.Is(err, types.ErrUserNotFound) {
				m.sessions.ClearCookie(w)
				return next(w, req)
			}

			m.logger.Error("Failed to load session user", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return nil
		}

		ctx := context.WithValue(req.Context(), userCtxKey{}, user)

		return next(w, req.WithContext(ctx))
	}
}
