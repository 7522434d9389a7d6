package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"course-marketplace/internal/usecase"
	"course-marketplace/pkg/apperr"
	"course-marketplace/pkg/utils"
)

type Handler struct {
	Auth    *AuthHandler
	Course  *CourseHandler
	Comment *CommentHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Course:  NewCourseHandler(service.Course, log),
		Comment: NewCommentHandler(service.Comment, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps a classified service error to its HTTP shape.
// Unclassified errors never leak details to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	message := apperr.MessageOf(err)

	switch apperr.KindOf(err) {
	case apperr.BadRequest:
		utils.ResponseBadRequest(w, message, nil)
	case apperr.NotFound:
		utils.ResponseNotFound(w, message)
	case apperr.Conflict:
		utils.ResponseConflict(w, message)
	case apperr.Unauthorized:
		utils.ResponseUnauthorized(w, message)
	case apperr.Forbidden:
		utils.ResponseForbidden(w, message)
	case apperr.VerificationFailed:
		utils.ResponsePaymentRequired(w, message)
	case apperr.UpstreamFailure:
		utils.ResponseBadGateway(w, message)
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
