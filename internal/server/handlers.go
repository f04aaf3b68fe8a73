package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/calumari/metadoc"
)

type handler struct {
	store        *metadoc.Store
	logger       *slog.Logger
	maxBodyBytes int64
}

// getMetadata resolves the request path against the document and writes the
// rendered listing: the bare string for a leaf, one line per child key for a
// node. The {path...} wildcard is empty for GET /metadata, which lists the
// root.
func (h *handler) getMetadata(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Resolve(r.PathValue("path"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	lines, err := metadoc.Render(v)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if len(lines) == 0 {
		return
	}
	_, _ = io.WriteString(w, strings.Join(lines, "\n")+"\n")
}

func (h *handler) putMetadata(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.readDocument(w, r)
	if !ok {
		return
	}
	if err := h.store.Replace(doc); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) patchMetadata(w http.ResponseWriter, r *http.Request) {
	patch, ok := h.readDocument(w, r)
	if !ok {
		return
	}
	if err := h.store.Merge(patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readDocument reads the size-capped request body and decodes it into the
// value model. On failure the response has already been written and the
// second return is false.
func (h *handler) readDocument(w http.ResponseWriter, r *http.Request) (any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.WarnContext(r.Context(), "request body too large", "limit", maxErr.Limit)
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "failed to read request body", "err", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	doc, err := metadoc.Unmarshal(body)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to decode request body", "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

// writeError maps store errors to status codes: ErrNotFound to 404, anything
// else (including ErrUnsupportedValueType) to 500. The body is the error's
// own text.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, metadoc.ErrNotFound) {
		status = http.StatusNotFound
	}
	h.logger.ErrorContext(r.Context(), "handler error", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	http.Error(w, err.Error(), status)
}
