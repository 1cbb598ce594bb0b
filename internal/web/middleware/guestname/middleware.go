package guestname

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type guestNameCtxKey struct{}

// FallbackName is used when no name pool is configured.
const FallbackName = "Guest"

// FromContext retrieves the guest display name from the context.
func FromContext(ctx context.Context) string {
	if name, ok := ctx.Value(guestNameCtxKey{}).(string); ok {
		return name
	}

	return FallbackName
}

// Middleware assigns anonymous visitors a display-only guest name, stored
// in a cookie so it is stable across requests.
type Middleware struct {
	cookieName string
	ttl        time.Duration
	names      []string
	logger     *zap.Logger
}

// New creates a new guest-name middleware.
func New(cfg *config.Guest, logger *zap.Logger) *Middleware {
	return &Middleware{
		cookieName: cfg.CookieName,
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
		names:      cfg.Names,
		logger:     logger.Named("guestname_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for guest naming.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		var name string

		if cookie, err := req.Cookie(m.cookieName); err == nil && cookie.Value != "" {
			name = cookie.Value
		} else {
			name = m.pickName()

			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    name,
				Path:     "/",
				MaxAge:   int(m.ttl.Seconds()),
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(req.Context(), guestNameCtxKey{}, name)

		return next(w, req.WithContext(ctx))
	}
}

// pickName selects a random name from the configured pool.
func (m *Middleware) pickName() string {
	if len(m.names) == 0 {
		return FallbackName
	}

	return m.names[rand.IntN(len(m.names))]
}
