package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/adaptor"
	"course-marketplace/pkg/middleware"
	"course-marketplace/pkg/utils"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create a new account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Exchange credentials for a token
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// GET /api/validate - Check the token and return the profile
		r.Get("/api/validate", authHandler.Validate)
	})
}
