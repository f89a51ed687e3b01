package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"reupyog-ai/internal/handlers"
	"reupyog-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService service.ChatService
	Pages       handlers.PageRenderer
	Static      http.Handler
	// RelayStats is nil when the relay log is disabled.
	RelayStats handlers.RelayStats
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.RelayStats)
	pageHandler := handlers.NewPageHandler(deps.Pages)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Get("/", pageHandler.Landing)
	r.Get("/chatbot", pageHandler.Chat)

	if deps.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static", deps.Static))
	}

	return r
}
