package response

import (
	"time"

	"course-marketplace/internal/data/repository"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converters
func CommentToResponse(comment *repository.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		CourseID:  comment.CourseID.String(),
		UserID:    comment.UserID.String(),
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
