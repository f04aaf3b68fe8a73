// Package server implements the HTTP boundary of the metadata store: routing,
// body decoding, and the mapping from store errors to status codes. The core
// never sees transport vocabulary; everything status-shaped lives here.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/calumari/metadoc"
	"github.com/calumari/metadoc/internal/server/ratelimit"
)

const defaultMaxBodyBytes = 50 << 10

// Options configures the HTTP boundary.
type Options struct {
	// Logger receives request and error logs. Defaults to slog.Default().
	Logger *slog.Logger
	// MaxBodyBytes caps PUT and PATCH bodies. Defaults to 50 KiB.
	MaxBodyBytes int64
	// WriteRequests allowed per WriteWindow per client IP, with WriteBurst
	// headroom. WriteRequests <= 0 disables write rate limiting.
	WriteRequests int
	WriteWindow   time.Duration
	WriteBurst    int
}

// NewRouter creates and configures the HTTP router serving store.
//
//	GET    /metadata/{path...}  resolve + render
//	PUT    /metadata            full document replace
//	PATCH  /metadata            JSON Merge Patch update
func NewRouter(store *metadoc.Store, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.WriteWindow <= 0 {
		opts.WriteWindow = time.Minute
	}
	if opts.WriteBurst <= 0 {
		opts.WriteBurst = opts.WriteRequests
	}

	h := &handler{store: store, logger: opts.Logger, maxBodyBytes: opts.MaxBodyBytes}

	write := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if opts.WriteRequests > 0 {
		limiter := ratelimit.NewLimiter(opts.WriteRequests, opts.WriteWindow, opts.WriteBurst)
		write = limitWrites(limiter)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /metadata", h.getMetadata)
	mux.HandleFunc("GET /metadata/{path...}", h.getMetadata)
	mux.HandleFunc("PUT /metadata", write(h.putMetadata))
	mux.HandleFunc("PATCH /metadata", write(h.patchMetadata))
	return logRequests(opts.Logger, mux)
}
