package repository

import (
	"go.uber.org/zap"

	"course-marketplace/pkg/database"
)

type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Video      VideoRepository
	Like       LikeRepository
	Comment    CommentRepository
	Booking    BookingRepository
	Enrollment EnrollmentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Course:     NewCourseRepository(db, log),
		Video:      NewVideoRepository(db, log),
		Like:       NewLikeRepository(db, log),
		Comment:    NewCommentRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Enrollment: NewEnrollmentRepository(db, log),
	}
}
