package assistant

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assistant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/assistant", func(r chi.Router) {
		r.Post("/clinical-evolution", h.GenerateClinicalEvolution)
		r.Post("/diagnosis", h.SuggestDiagnosis)
		r.Post("/treatment-plan", h.SuggestTreatmentPlan)
		r.Post("/no-show-risk", h.AnalyzeNoShowRisk)
		r.Post("/financial-insights", h.GenerateFinancialInsights)
		r.Post("/chat", h.Chat)
		r.Post("/message", h.GenerateMessage)
	})
}
