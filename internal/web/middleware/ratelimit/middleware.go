package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	errBlocked    = "temporarily blocked for repeated rate limit violations"
	errRateLimit  = "rate limit exceeded"
	headerRetryAt = "Retry-After"
)

type limiterState struct {
	limiter      *rate.Limiter
	strikes      int       // Number of times client has violated rate limit
	blockedUntil time.Time // Time until client is blocked for repeated violations
}

// Middleware implements per-IP rate limiting for the credential routes.
type Middleware struct {
	limiters *utils.TTLMap[string, *limiterState]
	config   *config.RateLimit
	logger   *zap.Logger
}

// New creates a new rate limiting middleware.
func New(config *config.RateLimit, logger *zap.Logger) *Middleware {
	// Use the longer of block duration or burst window * 2 for TTL
	ttl := time.Second * time.Duration(config.BurstSize*2)
	if blockTTL := time.Second * time.Duration(config.BlockDuration*2); blockTTL > ttl {
		ttl = blockTTL
	}

	return &Middleware{
		limiters: utils.NewTTLMap[string, *limiterState](ttl),
		config:   config,
		logger:   logger.Named("ratelimit_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for rate limiting.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := clientIP(req.Request)

		allowed, retryAfter, msg := m.checkRateLimit(clientIP)
		if !allowed {
			if retryAfter > 0 {
				w.Header().Set(headerRetryAt, fmt.Sprintf("%.0f", retryAfter.Seconds()))
			}

			http.Error(w, msg, http.StatusTooManyRequests)

			return nil
		}

		return next(w, req)
	}
}

// getLimiter returns the rate limiter state for the specified IP.
func (m *Middleware) getLimiter(clientIP string) *limiterState {
	if state, exists := m.limiters.Get(clientIP); exists {
		return state
	}

	state := &limiterState{
		limiter: rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize),
	}
	m.limiters.Set(clientIP, state)

	return state
}

// handleStrike records a violation and blocks the client if the strike
// limit is reached.
func (m *Middleware) handleStrike(state *limiterState, clientIP string) (time.Duration, string) {
	state.strikes++

	if state.strikes >= m.config.StrikeLimit {
		blockDuration := time.Duration(m.config.BlockDuration) * time.Second
		state.blockedUntil = time.Now().Add(blockDuration)
		state.strikes = 0

		m.logger.Debug("Client exceeded strike limit and is now blocked",
			zap.String("ip", clientIP),
			zap.Duration("block_duration", blockDuration))

		return blockDuration, errBlocked
	}

	m.logger.Debug("Rate limit exceeded",
		zap.String("ip", clientIP),
		zap.Int("strikes", state.strikes))

	return 0, errRateLimit
}

// checkRateLimit checks if the request should be allowed and updates
// violation tracking.
func (m *Middleware) checkRateLimit(clientIP string) (bool, time.Duration, string) {
	state := m.getLimiter(clientIP)

	// Check if client is blocked
	if !state.blockedUntil.IsZero() && time.Now().Before(state.blockedUntil) {
		retryAfter := time.Until(state.blockedUntil).Round(time.Second)

		m.logger.Debug("Client is temporarily blocked",
			zap.String("ip", clientIP),
			zap.Duration("retry_after", retryAfter))

		return false, retryAfter, errBlocked
	}

	if !state.limiter.Allow() {
		retryAfter, msg := m.handleStrike(state, clientIP)
		return false, retryAfter, msg
	}

	// Reset strikes on successful request
	state.strikes = 0

	return true, 0, ""
}

// clientIP extracts the client address, preferring the first
// X-Forwarded-For hop when the server sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip, _, found := strings.Cut(forwarded, ","); found || ip != "" {
			return strings.TrimSpace(ip)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
