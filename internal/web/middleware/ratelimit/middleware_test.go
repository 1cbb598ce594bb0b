package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/internal/web/middleware/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, cfg *config.RateLimit) *bunrouter.Router {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	mw := ratelimit.New(cfg, logger)

	router := bunrouter.New()
	router.Use(mw.AsRESTMiddleware).POST("/login", func(w http.ResponseWriter, req bunrouter.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	return router
}

func doPost(router *bunrouter.Router, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAllowsRequestsWithinBurst(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         3,
		StrikeLimit:       3,
		BlockDuration:     300,
	})

	for range 3 {
		rec := doPost(router, "192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRejectsRequestsOverBurst(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         2,
		StrikeLimit:       10,
		BlockDuration:     300,
	})

	doPost(router, "192.0.2.2:1234")
	doPost(router, "192.0.2.2:1234")

	rec := doPost(router, "192.0.2.2:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestBlocksAfterStrikeLimit(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         1,
		StrikeLimit:       2,
		BlockDuration:     300,
	})

	doPost(router, "192.0.2.3:1234")

	// First violation is a strike, second triggers the block
	rec := doPost(router, "192.0.2.3:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = doPost(router, "192.0.2.3:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "temporarily blocked")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Still blocked even though the limiter has refilled
	rec = doPost(router, "192.0.2.3:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "temporarily blocked")
}

func TestLimitsAreTrackedPerClient(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         1,
		StrikeLimit:       10,
		BlockDuration:     300,
	})

	doPost(router, "192.0.2.4:1234")
	rec := doPost(router, "192.0.2.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client is unaffected
	rec = doPost(router, "192.0.2.5:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsesForwardedForWhenPresent(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{
		RequestsPerSecond: 1,
		BurstSize:         1,
		StrikeLimit:       10,
		BlockDuration:     300,
	})

	send := func(forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1, 10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1, 10.0.0.1").Code)

	// Same proxy, different originating client
	assert.Equal(t, http.StatusOK, send("203.0.113.2, 10.0.0.1").Code)
}
