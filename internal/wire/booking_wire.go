package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/adaptor"
	"course-marketplace/pkg/middleware"
	"course-marketplace/pkg/utils"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/bookings - Open a checkout for a course
		r.Post("/api/bookings", bookingHandler.Create)

		// POST /api/bookings/verify - Confirm a payment and settle the booking
		r.Post("/api/bookings/verify", bookingHandler.Verify)

		// GET /api/bookings/user - View the caller's booking history
		r.Get("/api/bookings/user", bookingHandler.ListByUser)
	})
}
