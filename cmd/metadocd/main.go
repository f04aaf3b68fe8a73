// Command metadocd serves an in-memory hierarchical metadata document over
// HTTP: PUT /metadata replaces it, PATCH /metadata applies a JSON Merge Patch
// (RFC 7396), and GET /metadata/{path} browses it like a directory tree.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/calumari/metadoc"
	"github.com/calumari/metadoc/internal/server"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "metadocd: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	maxBodyBytes := flag.Int64("max-body-bytes", 50<<10, "Maximum PUT/PATCH body size in bytes")
	writeRequests := flag.Int("write-requests", 0, "Write requests allowed per client per minute (0 disables rate limiting)")
	writeBurst := flag.Int("write-burst", 0, "Write burst headroom per client (defaults to -write-requests)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	logger := initLogger(*logLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := metadoc.New()
	httpServer := &http.Server{
		Addr: *httpAddr,
		Handler: server.NewRouter(store, server.Options{
			Logger:        logger,
			MaxBodyBytes:  *maxBodyBytes,
			WriteRequests: *writeRequests,
			WriteWindow:   time.Minute,
			WriteBurst:    *writeBurst,
		}),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", *httpAddr)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		logger.Info("Server stopped")
	}
	return nil
}

// initLogger builds a structured logger writing colorized output when stderr
// is a terminal.
func initLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}
