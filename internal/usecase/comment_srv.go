package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/data/repository"
	"course-marketplace/internal/dto/request"
	"course-marketplace/internal/dto/response"
	"course-marketplace/pkg/apperr"
	"course-marketplace/pkg/utils"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uuid.UUID, courseID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	GetCourseComments(ctx context.Context, courseID string) ([]response.CommentResponse, error)
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID uuid.UUID, courseID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("CreateComment validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequest, "invalid course ID format %s", courseID)
	}

	course, err := s.repo.Course.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, apperr.Newf(apperr.NotFound, "course %s not found", courseID)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.Newf(apperr.NotFound, "user %s not found", userID.String())
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CourseID: course.ID,
		UserID:   userID,
		Content:  req.Content,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("course_id", course.ID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.CommentToResponse(&repository.CommentWithAuthor{
		Comment:  *comment,
		Username: user.Username,
	})
	return &resp, nil
}

func (s *commentService) GetCourseComments(ctx context.Context, courseID string) ([]response.CommentResponse, error) {
	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequest, "invalid course ID format %s", courseID)
	}

	course, err := s.repo.Course.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, apperr.Newf(apperr.NotFound, "course %s not found", courseID)
	}

	comments, err := s.repo.Comment.FindByCourseID(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}

	items := make([]response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, response.CommentToResponse(comment))
	}

	return items, nil
}
