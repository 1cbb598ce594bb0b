package guestname_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/internal/web/middleware/guestname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, cfg *config.Guest) (*bunrouter.Router, *string) {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	mw := guestname.New(cfg, logger)

	var seenName string

	router := bunrouter.New()
	router.Use(mw.AsRESTMiddleware).GET("/", func(w http.ResponseWriter, req bunrouter.Request) error {
		seenName = guestname.FromContext(req.Context())
		return nil
	})

	return router, &seenName
}

func TestAssignsGuestNameCookie(t *testing.T) {
	t.Parallel()

	cfg := &config.Guest{
		CookieName: "guest_name",
		TTLHours:   24,
		Names:      []string{"Quiet Quokka"},
	}
	router, seenName := setupRouter(t, cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Quiet Quokka", *seenName)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "guest_name", cookies[0].Name)
	assert.Equal(t, "Quiet Quokka", cookies[0].Value)
	assert.Equal(t, 24*60*60, cookies[0].MaxAge)
}

func TestKeepsExistingGuestName(t *testing.T) {
	t.Parallel()

	cfg := &config.Guest{
		CookieName: "guest_name",
		TTLHours:   24,
		Names:      []string{"Quiet Quokka"},
	}
	router, seenName := setupRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "guest_name", Value: "Wandering Walrus"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "Wandering Walrus", *seenName)
	assert.Empty(t, rec.Result().Cookies())
}

func TestFallbackNameWithEmptyPool(t *testing.T) {
	t.Parallel()

	cfg := &config.Guest{
		CookieName: "guest_name",
		TTLHours:   24,
	}
	router, seenName := setupRouter(t, cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, guestname.FallbackName, *seenName)
}
