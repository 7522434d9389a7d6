package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/adaptor"
	"course-marketplace/pkg/middleware"
	"course-marketplace/pkg/utils"
)

func wireCourse(
	r chi.Router,
	courseHandler *adaptor.CourseHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/courses - Browse the catalog (public)
	r.Get("/api/courses", courseHandler.List)

	// GET /api/courses/{id} - Course detail; adapts to the viewer when a
	// token is presented
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.JWT.Secret, log))

		r.Get("/api/courses/{id}", courseHandler.Get)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/courses/{id}/like - Toggle the viewer's course like
		r.Post("/api/courses/{id}/like", courseHandler.ToggleLike)

		// GET /api/courses/{id}/videos - Watch list; admins and enrolled users only
		r.Get("/api/courses/{id}/videos", courseHandler.ListVideos)

		// POST /api/courses/{courseId}/videos/{videoId}/like - Toggle a video like
		r.Post("/api/courses/{courseId}/videos/{videoId}/like", courseHandler.ToggleVideoLike)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		// POST /api/courses - Create a course (admin)
		r.Post("/api/courses", courseHandler.Create)

		// PUT /api/courses/{id} - Update a course (admin)
		r.Put("/api/courses/{id}", courseHandler.Update)

		// POST /api/courses/{id}/videos - Upload a course video (admin)
		r.Post("/api/courses/{id}/videos", courseHandler.AddVideo)
	})
}
