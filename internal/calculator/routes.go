package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Post("/convert", h.Convert)
		r.Post("/evaluate", h.EvaluatePostfix)
		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
	})
}
