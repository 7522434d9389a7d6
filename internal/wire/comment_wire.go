package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/adaptor"
	"course-marketplace/pkg/middleware"
	"course-marketplace/pkg/utils"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/comments/{courseId} - Read a course's comment thread (public)
	r.Get("/api/comments/{courseId}", commentHandler.ListByCourse)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/comments/{courseId} - Post a comment
		r.Post("/api/comments/{courseId}", commentHandler.Create)
	})
}
