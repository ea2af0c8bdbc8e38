package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	assistantapi "github.com/odontosys/ai-backend/internal/api/assistant"
	knowledgeapi "github.com/odontosys/ai-backend/internal/api/knowledge"
	"github.com/odontosys/ai-backend/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(assistantHandler *assistantapi.Handler, knowledgeHandler *knowledgeapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(90 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		assistantapi.RegisterRoutes(r, assistantHandler)
		knowledgeapi.RegisterRoutes(r, knowledgeHandler)
	})

	return r
}
