package session_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/internal/web/session"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*session.Store, func()) {
	t.Helper()
	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	// Create test logger
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	store := session.NewStore(client, &config.Session{
		CookieName: "tipboard_session",
		TTLHours:   1,
	}, logger)

	cleanup := func() {
		client.Close()
		mr.Close()
		logger.Sync()
	}

	return store, cleanup
}

func TestSessionRoundtrip(t *testing.T) {
	t.Parallel()

	store, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := store.UserID(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestSessionUnknownToken(t *testing.T) {
	t.Parallel()

	store, cleanup := setupTest(t)
	defer cleanup()

	_, ok, err := store.UserID(t.Context(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionDestroy(t *testing.T) {
	t.Parallel()

	store, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	_, ok, err := store.UserID(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Destroying again is not an error
	require.NoError(t, store.Destroy(ctx, token))
}

func TestSessionTokensAreUnique(t *testing.T) {
	t.Parallel()

	store, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	first, err := store.Create(ctx, 1)
	require.NoError(t, err)

	second, err := store.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
