package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes - маршруты API поверх переданного обработчика
func Routes(h *TaskHandler) chi.Router {
	r := chi.NewRouter()

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.GetTasks)       // GET /api/tasks
		r.Post("/", h.PostTask)      // POST /api/tasks
		r.Get("/stats", h.GetStats)  // GET /api/tasks/stats

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)       // GET /api/tasks/{id}
			r.Put("/", h.UpdateTaskByID)    // PUT /api/tasks/{id}
			r.Delete("/", h.DeleteTaskByID) // DELETE /api/tasks/{id}
		})
	})

	r.Get("/health", h.HealthCheck)

	return r
}
