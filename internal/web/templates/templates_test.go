package templates_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/quartzlab/tipboard/internal/database/types/enum"
	"github.com/quartzlab/tipboard/internal/web/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRenderer(t *testing.T) *templates.Renderer {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	renderer, err := templates.NewRenderer(logger)
	require.NoError(t, err)

	return renderer
}

func TestRenderHomeAnonymous(t *testing.T) {
	t.Parallel()

	renderer := setupRenderer(t)

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, "home.html", &templates.HomeData{
		Username: "Curious Capuchin",
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, "Curious Capuchin")
	assert.Contains(t, body, "No tips yet.")
	assert.Contains(t, body, "/login")
	assert.NotContains(t, body, "Post tip")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestRenderHomeAuthenticated(t *testing.T) {
	t.Parallel()

	renderer := setupRenderer(t)

	tip := &types.TipListing{
		Tip: types.Tip{
			ID:       3,
			AuthorID: 10,
			Content:  "Label your breakers before the outage.",
			Author:   &types.User{ID: 10, Username: "fergus"},
		},
		Upvotes:    2,
		Downvotes:  1,
		ViewerVote: enum.VoteStateUp,
	}

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, "home.html", &templates.HomeData{
		Username:      "mabel",
		Authenticated: true,
		ViewerID:      20,
		CanDownvote:   true,
		Tips:          []*types.TipListing{tip},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, "Label your breakers before the outage.")
	assert.Contains(t, body, "by fergus")
	assert.Contains(t, body, "Post tip")
	assert.Contains(t, body, "/upvote/3")
	assert.Contains(t, body, "Remove upvote")
	assert.Contains(t, body, "/downvote/3")

	// Viewer is neither the author nor privileged enough to delete
	assert.NotContains(t, body, "/delete/3")
}

func TestRenderHomeEscapesContent(t *testing.T) {
	t.Parallel()

	renderer := setupRenderer(t)

	tip := &types.TipListing{
		Tip: types.Tip{
			ID:      1,
			Content: "<script>alert(1)</script>",
			Author:  &types.User{Username: "mallory"},
		},
	}

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, "home.html", &templates.HomeData{
		Username: "Guest",
		Tips:     []*types.TipListing{tip},
	})
	require.NoError(t, err)

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
}

func TestRenderAuthForms(t *testing.T) {
	t.Parallel()

	renderer := setupRenderer(t)

	t.Run("login with error", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := renderer.Render(rec, "login.html", &templates.AuthData{
			Username: "mabel",
			Error:    "Invalid username or password",
		})
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "Invalid username or password")
		assert.Contains(t, body, "mabel")
	})

	t.Run("registration", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := renderer.Render(rec, "registration.html", &templates.AuthData{})
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "password_confirm")
	})
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	renderer := setupRenderer(t)

	rec := httptest.NewRecorder()
	err := renderer.Render(rec, "missing.html", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
