package knowledge

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers knowledge routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/knowledge", func(r chi.Router) {
		r.Post("/", h.AddKnowledge)
		r.Post("/search", h.SearchKnowledge)
		r.Put("/{id}", h.UpdateKnowledge)
		r.Delete("/{id}", h.DeactivateKnowledge)
	})
}
