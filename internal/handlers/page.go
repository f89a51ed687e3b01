package handlers

import (
	"bytes"
	"io"
	"net/http"

	"reupyog-ai/internal/contextutil"
)

// PageRenderer renders the site's HTML pages.
type PageRenderer interface {
	RenderLanding(w io.Writer) error
	RenderChat(w io.Writer) error
}

// PageHandler serves the landing and chat pages.
type PageHandler struct {
	pages PageRenderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(pages PageRenderer) *PageHandler {
	return &PageHandler{pages: pages}
}

// Landing serves GET /.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "landing", h.pages.RenderLanding)
}

// Chat serves GET /chatbot.
func (h *PageHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "chat", h.pages.RenderChat)
}

// render buffers the page so a template failure can still produce a 500.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page string, fn func(io.Writer) error) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render page", "page", page, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
