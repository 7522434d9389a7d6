package response

import (
	"time"

	"course-marketplace/internal/data/entity"
)

type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	LikesCount  int64     `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseDetailResponse adapts to the viewer: enrollment status and whether
// protected content exists. Video URLs are never exposed here.
type CourseDetailResponse struct {
	CourseResponse
	EnrolledCount int64 `json:"enrolled_count"`
	IsEnrolled    bool  `json:"is_enrolled"`
	HasVideos     bool  `json:"has_videos"`
}

type VideoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"video_url"`
	LikesCount  int64     `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type LikeResponse struct {
	LikesCount int64 `json:"likesCount"`
	UserLiked  bool  `json:"userLiked"`
}

// Helper converters
func CourseToResponse(course *entity.Course, imageURL *string, likesCount int64) CourseResponse {
	return CourseResponse{
		ID:          course.ID.String(),
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		ImageURL:    imageURL,
		LikesCount:  likesCount,
		CreatedAt:   course.CreatedAt,
	}
}
