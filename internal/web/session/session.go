package session

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const keyPrefix = "session:"

// Store persists login sessions in Redis. Each session maps an opaque
// token, carried in a cookie, to the account ID it authenticates.
type Store struct {
	client     rueidis.Client
	cookieName string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewStore creates a new session store.
func NewStore(client rueidis.Client, cfg *config.Session, logger *zap.Logger) *Store {
	return &Store{
		client:     client,
		cookieName: cfg.CookieName,
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
		logger:     logger.Named("session"),
	}
}

// Create starts a new session for the user and returns its token.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	cmd := s.client.B().Set().
		Key(keyPrefix + token).
		Value(strconv.FormatInt(userID, 10)).
		Ex(s.ttl).
		Build()

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Debug("Created session", zap.Int64("userID", userID))

	return token, nil
}

// UserID resolves a session token to the account it authenticates.
// Returns false for unknown or expired tokens.
func (s *Store) UserID(ctx context.Context, token string) (int64, bool, error) {
	cmd := s.client.B().Get().Key(keyPrefix + token).Build()

	value, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value: %w", err)
	}

	return userID, true, nil
}

// Destroy ends a session. Destroying an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(keyPrefix + token).Build()

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns an empty string when no session cookie is present.
func (s *Store) TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// SetCookie attaches the session cookie to a response.
func (s *Store) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
