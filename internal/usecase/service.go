package usecase

import (
	"go.uber.org/zap"

	"course-marketplace/internal/data/repository"
	"course-marketplace/pkg/events"
	"course-marketplace/pkg/gateway"
	"course-marketplace/pkg/storage"
	"course-marketplace/pkg/utils"
)

type Service struct {
	Auth    AuthService
	Course  CourseService
	Comment CommentService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gw gateway.OrderCreator,
	publisher events.Publisher,
	media storage.MediaStore,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Course:  NewCourseService(repo, media, publisher, log),
		Comment: NewCommentService(repo, log),
		Booking: NewBookingService(repo, gw, config, log),
	}
}
