package web

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/internal/web/handler"
	"github.com/quartzlab/tipboard/internal/web/middleware/auth"
	"github.com/quartzlab/tipboard/internal/web/middleware/guestname"
	"github.com/quartzlab/tipboard/internal/web/middleware/ratelimit"
	"github.com/quartzlab/tipboard/internal/web/session"
	"github.com/quartzlab/tipboard/internal/web/templates"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the tip board web application.
type Server struct {
	homeHandler *handler.HomeHandler
	voteHandler *handler.VoteHandler
	tipHandler  *handler.TipHandler
	authHandler *handler.AuthHandler
}

// NewServer creates the web application handler.
func NewServer(
	db database.Client,
	sessions *session.Store,
	cfg *config.Config,
	logger *zap.Logger,
) (http.Handler, error) {
	renderer, err := templates.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	// Create server instance with handlers
	server := &Server{
		homeHandler: handler.NewHomeHandler(db, renderer, logger),
		voteHandler: handler.NewVoteHandler(db, logger),
		tipHandler:  handler.NewTipHandler(db, logger),
		authHandler: handler.NewAuthHandler(db, sessions, renderer, logger),
	}

	// Create middleware instances
	guestMiddleware := guestname.New(&cfg.Guest, logger)
	authMiddleware := auth.New(db, sessions, logger)
	loginLimiter := ratelimit.New(&cfg.RateLimit, logger)

	// Unknown paths fall through to the board
	router := bunrouter.New(
		bunrouter.WithNotFoundHandler(func(w http.ResponseWriter, req bunrouter.Request) error {
			http.Redirect(w, req.Request, "/", http.StatusFound)
			return nil
		}),
	)

	router.Use(
		guestMiddleware.AsRESTMiddleware,
		authMiddleware.AsRESTMiddleware,
	).WithGroup("", func(g *bunrouter.Group) {
		g.GET("/", server.homeHandler.Show)
		g.POST("/", server.homeHandler.Create)

		g.POST("/upvote/:id", server.voteHandler.Upvote)
		g.POST("/downvote/:id", server.voteHandler.Downvote)
		g.POST("/delete/:id", server.tipHandler.Delete)

		g.GET("/login", server.authHandler.ShowLogin)
		g.GET("/registration", server.authHandler.ShowRegistration)
		g.GET("/logout", server.authHandler.Logout)

		// Credential submissions are rate limited per client IP
		g.Use(loginLimiter.AsRESTMiddleware).WithGroup("", func(rl *bunrouter.Group) {
			rl.POST("/login", server.authHandler.Login)
			rl.POST("/registration", server.authHandler.Register)
		})
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router), nil
}
