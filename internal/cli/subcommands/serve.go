package subcommands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"MovieMatch/internal/config"
	"MovieMatch/internal/logging"
	"MovieMatch/server"

	"go.uber.org/zap"
)

// RunServe builds the index once and answers recommendation queries over HTTP
// until interrupted. Empty host or zero port fall back to the configuration.
func RunServe(ctx context.Context, cfg config.Config, host string, port int) int {
	// Server logs go to the terminal unless the config explicitly asks for a file.
	toFile := cfg.Logging.ToFile != nil && *cfg.Logging.ToFile
	if err := logging.Init(toFile, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.Close()

	if host == "" {
		host = cfg.Server.Host
	}
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	rec, err := loadRecommender(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, startupMessage(err, cfg.Dataset.Path))
		return 1
	}

	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpServer := server.NewHTTPServer(host, strconv.Itoa(port), rec, cfg.Recommend.Suggestions)
	if err := httpServer.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start HTTP server: %v\n", err)
		return 1
	}

	fmt.Printf("MovieMatch HTTP server listening on http://%s:%d\n", host, port)
	fmt.Printf("  Health:          http://%s:%d/health\n", host, port)
	fmt.Printf("  Recommendations: http://%s:%d/v1/recommendations?title=...\n", host, port)
	fmt.Printf("  Metrics:         http://%s:%d/metrics\n", host, port)

	<-sigCtx.Done()
	fmt.Println("HTTP server shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logging.L().Warn("failed to stop HTTP server", zap.Error(err))
		return 1
	}
	return 0
}
