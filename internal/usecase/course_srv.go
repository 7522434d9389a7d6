package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/data/repository"
	"course-marketplace/internal/dto/request"
	"course-marketplace/internal/dto/response"
	"course-marketplace/pkg/apperr"
	"course-marketplace/pkg/events"
	"course-marketplace/pkg/storage"
	"course-marketplace/pkg/utils"
)

// Upload is a media file received from a multipart request.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CourseService interface {
	ListCourses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error)

	// GetCourse returns the course detail shaped for the viewer. A nil
	// viewerID means anonymous: enrollment reads as false. Admins always
	// read as enrolled.
	GetCourse(ctx context.Context, courseID string, viewerID *uuid.UUID, isAdmin bool) (*response.CourseDetailResponse, error)

	CreateCourse(ctx context.Context, instructorID uuid.UUID, req *request.CreateCourseRequest, image *Upload) (*response.CourseResponse, error)
	UpdateCourse(ctx context.Context, courseID string, req *request.UpdateCourseRequest, image *Upload) (*response.CourseResponse, error)
	ToggleCourseLike(ctx context.Context, userID uuid.UUID, courseID string) (*response.LikeResponse, error)

	AddVideo(ctx context.Context, courseID string, req *request.AddVideoRequest, video *Upload) (*response.VideoResponse, error)

	// ListVideos is gated: only admins and enrolled users get playable URLs.
	ListVideos(ctx context.Context, userID uuid.UUID, isAdmin bool, courseID string) ([]response.VideoResponse, error)

	ToggleVideoLike(ctx context.Context, userID uuid.UUID, courseID, videoID string) (*response.LikeResponse, error)
}

type courseService struct {
	repo      *repository.Repository
	media     storage.MediaStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewCourseService(repo *repository.Repository, media storage.MediaStore, publisher events.Publisher, log *zap.Logger) CourseService {
	return &courseService{
		repo:      repo,
		media:     media,
		publisher: publisher,
		log:       log.With(zap.String("service", "course")),
	}
}

func (s *courseService) ListCourses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	courses, err := s.repo.Course.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}

	total, err := s.repo.Course.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	items := make([]response.CourseResponse, 0, len(courses))
	for _, course := range courses {
		likes, err := s.repo.Like.CountCourseLikes(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("count course likes: %w", err)
		}
		items = append(items, response.CourseToResponse(course, s.imageURL(ctx, course), likes))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string, viewerID *uuid.UUID, isAdmin bool) (*response.CourseDetailResponse, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	likes, err := s.repo.Like.CountCourseLikes(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("count course likes: %w", err)
	}

	enrolledCount, err := s.repo.Enrollment.CountByCourseID(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	videoCount, err := s.repo.Video.CountByCourseID(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}

	isEnrolled := isAdmin
	if !isEnrolled && viewerID != nil {
		isEnrolled, err = s.repo.Booking.ExistsCompleted(ctx, *viewerID, course.ID)
		if err != nil {
			return nil, fmt.Errorf("check enrollment: %w", err)
		}
	}

	return &response.CourseDetailResponse{
		CourseResponse: response.CourseToResponse(course, s.imageURL(ctx, course), likes),
		EnrolledCount:  enrolledCount,
		IsEnrolled:     isEnrolled,
		HasVideos:      videoCount > 0,
	}, nil
}

func (s *courseService) CreateCourse(ctx context.Context, instructorID uuid.UUID, req *request.CreateCourseRequest, image *Upload) (*response.CourseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("CreateCourse validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	course := &entity.Course{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		InstructorID: &instructorID,
	}

	if image != nil {
		key := fmt.Sprintf("images/%s%s", course.ID.String(), path.Ext(image.Filename))
		if err := s.media.Put(ctx, key, image.ContentType, image.Reader); err != nil {
			return nil, apperr.Wrap(apperr.UpstreamFailure, "image upload failed", err)
		}
		course.ImageKey = &key
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("title", course.Title),
		zap.Int64("price", course.Price),
	)

	resp := response.CourseToResponse(course, s.imageURL(ctx, course), 0)
	return &resp, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID string, req *request.UpdateCourseRequest, image *Upload) (*response.CourseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("UpdateCourse validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if image != nil {
		key := fmt.Sprintf("images/%s%s", course.ID.String(), path.Ext(image.Filename))
		if err := s.media.Put(ctx, key, image.ContentType, image.Reader); err != nil {
			return nil, apperr.Wrap(apperr.UpstreamFailure, "image upload failed", err)
		}
		course.ImageKey = &key
	}

	course.UpdatedAt = time.Now()
	if err := s.repo.Course.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	likes, err := s.repo.Like.CountCourseLikes(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("count course likes: %w", err)
	}

	s.log.Info("Course updated", zap.String("course_id", course.ID.String()))

	resp := response.CourseToResponse(course, s.imageURL(ctx, course), likes)
	return &resp, nil
}

func (s *courseService) ToggleCourseLike(ctx context.Context, userID uuid.UUID, courseID string) (*response.LikeResponse, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.Like.HasCourseLike(ctx, course.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check course like: %w", err)
	}

	if liked {
		if _, err := s.repo.Like.RemoveCourseLike(ctx, course.ID, userID); err != nil {
			return nil, fmt.Errorf("remove course like: %w", err)
		}
	} else {
		if err := s.repo.Like.AddCourseLike(ctx, course.ID, userID); err != nil {
			return nil, fmt.Errorf("add course like: %w", err)
		}
	}

	count, err := s.repo.Like.CountCourseLikes(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("count course likes: %w", err)
	}

	// The mutation is committed; a publish failure only loses the push update.
	event := events.CourseLikeEvent{
		CourseID:   course.ID.String(),
		LikesCount: count,
		UserLiked:  !liked,
	}
	if err := s.publisher.Publish(ctx, events.KeyCourseLikeChanged, event); err != nil {
		s.log.Warn("Failed to publish course like event",
			zap.Error(err),
			zap.String("course_id", course.ID.String()),
		)
	}

	return &response.LikeResponse{LikesCount: count, UserLiked: !liked}, nil
}

func (s *courseService) AddVideo(ctx context.Context, courseID string, req *request.AddVideoRequest, video *Upload) (*response.VideoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("AddVideo validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if video == nil {
		return nil, apperr.New(apperr.BadRequest, "video file is required")
	}

	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	videoID := uuid.New()
	key := fmt.Sprintf("videos/%s/%s%s", course.ID.String(), videoID.String(), path.Ext(video.Filename))
	if err := s.media.Put(ctx, key, video.ContentType, video.Reader); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamFailure, "video upload failed", err)
	}

	record := &entity.Video{
		BaseSimple: entity.BaseSimple{
			ID:        videoID,
			CreatedAt: time.Now(),
		},
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		StorageKey:  key,
	}

	if err := s.repo.Video.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.log.Info("Video added",
		zap.String("course_id", course.ID.String()),
		zap.String("video_id", videoID.String()),
		zap.String("title", record.Title),
	)

	url, err := s.media.PresignGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign video: %w", err)
	}

	return &response.VideoResponse{
		ID:          videoID.String(),
		Title:       record.Title,
		Description: record.Description,
		VideoURL:    url,
		LikesCount:  0,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (s *courseService) ListVideos(ctx context.Context, userID uuid.UUID, isAdmin bool, courseID string) ([]response.VideoResponse, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		entitled, err := s.repo.Booking.ExistsCompleted(ctx, userID, course.ID)
		if err != nil {
			return nil, fmt.Errorf("check enrollment: %w", err)
		}
		if !entitled {
			return nil, apperr.New(apperr.Forbidden, "course not purchased")
		}
	}

	videos, err := s.repo.Video.FindByCourseID(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}

	items := make([]response.VideoResponse, 0, len(videos))
	for _, video := range videos {
		url, err := s.media.PresignGet(ctx, video.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("presign video %s: %w", video.ID.String(), err)
		}

		likes, err := s.repo.Like.CountVideoLikes(ctx, video.ID)
		if err != nil {
			return nil, fmt.Errorf("count video likes: %w", err)
		}

		items = append(items, response.VideoResponse{
			ID:          video.ID.String(),
			Title:       video.Title,
			Description: video.Description,
			VideoURL:    url,
			LikesCount:  likes,
			CreatedAt:   video.CreatedAt,
		})
	}

	return items, nil
}

func (s *courseService) ToggleVideoLike(ctx context.Context, userID uuid.UUID, courseID, videoID string) (*response.LikeResponse, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequest, "invalid video ID format %s", videoID)
	}

	video, err := s.repo.Video.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}
	if video == nil || video.CourseID != course.ID {
		return nil, apperr.Newf(apperr.NotFound, "video %s not found", videoID)
	}

	liked, err := s.repo.Like.HasVideoLike(ctx, video.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check video like: %w", err)
	}

	if liked {
		if _, err := s.repo.Like.RemoveVideoLike(ctx, video.ID, userID); err != nil {
			return nil, fmt.Errorf("remove video like: %w", err)
		}
	} else {
		if err := s.repo.Like.AddVideoLike(ctx, video.ID, userID); err != nil {
			return nil, fmt.Errorf("add video like: %w", err)
		}
	}

	count, err := s.repo.Like.CountVideoLikes(ctx, video.ID)
	if err != nil {
		return nil, fmt.Errorf("count video likes: %w", err)
	}

	event := events.VideoLikeEvent{
		CourseID:   course.ID.String(),
		VideoID:    video.ID.String(),
		LikesCount: count,
		UserLiked:  !liked,
	}
	if err := s.publisher.Publish(ctx, events.KeyVideoLikeChanged, event); err != nil {
		s.log.Warn("Failed to publish video like event",
			zap.Error(err),
			zap.String("video_id", video.ID.String()),
		)
	}

	return &response.LikeResponse{LikesCount: count, UserLiked: !liked}, nil
}

// findCourse parses the id and loads the course, normalizing the two miss
// cases to kinded errors.
func (s *courseService) findCourse(ctx context.Context, courseID string) (*entity.Course, error) {
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

	return course, nil
}

// imageURL resolves the stored image key to a presigned URL. Failures degrade
// to no image rather than failing the whole read.
func (s *courseService) imageURL(ctx context.Context, course *entity.Course) *string {
	if course.ImageKey == nil {
		return nil
	}

	url, err := s.media.PresignGet(ctx, *course.ImageKey)
	if err != nil {
		s.log.Warn("Failed to presign course image",
			zap.Error(err),
			zap.String("course_id", course.ID.String()),
		)
		return nil
	}

	return &url
}
