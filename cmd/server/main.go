package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quartzlab/tipboard/internal/redis"
	"github.com/quartzlab/tipboard/internal/setup"
	"github.com/quartzlab/tipboard/internal/web"
	"github.com/quartzlab/tipboard/internal/web/session"
	"go.uber.org/zap"
)

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(context.Background(), true)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	// Session storage lives in its own Redis database
	sessionClient, err := app.RedisManager.GetClient(redis.SessionDBIndex)
	if err != nil {
		app.Logger.Fatal("Failed to create session Redis client", zap.Error(err))
	}

	sessions := session.NewStore(sessionClient, &app.Config.Session, app.Logger)

	// Create server
	handler, err := web.NewServer(app.DB, sessions, app.Config, app.Logger)
	if err != nil {
		app.Logger.Fatal("Failed to create web server", zap.Error(err))
	}

	// Get server address from config
	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Web server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down web server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")
}
