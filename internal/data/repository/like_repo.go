package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/pkg/database"
)

// LikeRepository manages the course and video like sets. Membership is unique
// per (subject, user); Add is a no-op when the row already exists.
type LikeRepository interface {
	AddCourseLike(ctx context.Context, courseID, userID uuid.UUID) error
	RemoveCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	HasCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	CountCourseLikes(ctx context.Context, courseID uuid.UUID) (int64, error)

	AddVideoLike(ctx context.Context, videoID, userID uuid.UUID) error
	RemoveVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error)
	HasVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error)
	CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int64, error)
}

type likeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLikeRepository(db database.PgxIface, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func (r *likeRepository) AddCourseLike(ctx context.Context, courseID, userID uuid.UUID) error {
	query := `
		INSERT INTO course_likes (course_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (course_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, courseID, userID)
	if err != nil {
		r.log.Error("Failed to add course like",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("add course like: %w", err)
	}

	return nil
}

func (r *likeRepository) RemoveCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM course_likes WHERE course_id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, courseID, userID)
	if err != nil {
		r.log.Error("Failed to remove course like",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("remove course like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *likeRepository) HasCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM course_likes WHERE course_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check course like",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check course like: %w", err)
	}

	return exists, nil
}

func (r *likeRepository) CountCourseLikes(ctx context.Context, courseID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM course_likes WHERE course_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		r.log.Error("Failed to count course likes",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("count course likes: %w", err)
	}

	return count, nil
}

func (r *likeRepository) AddVideoLike(ctx context.Context, videoID, userID uuid.UUID) error {
	query := `
		INSERT INTO video_likes (video_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (video_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, videoID, userID)
	if err != nil {
		r.log.Error("Failed to add video like",
			zap.Error(err),
			zap.String("video_id", videoID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("add video like: %w", err)
	}

	return nil
}

func (r *likeRepository) RemoveVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM video_likes WHERE video_id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, videoID, userID)
	if err != nil {
		r.log.Error("Failed to remove video like",
			zap.Error(err),
			zap.String("video_id", videoID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("remove video like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *likeRepository) HasVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM video_likes WHERE video_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, videoID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check video like",
			zap.Error(err),
			zap.String("video_id", videoID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check video like: %w", err)
	}

	return exists, nil
}

func (r *likeRepository) CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM video_likes WHERE video_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, videoID).Scan(&count); err != nil {
		r.log.Error("Failed to count video likes",
			zap.Error(err),
			zap.String("video_id", videoID.String()),
		)
		return 0, fmt.Errorf("count video likes: %w", err)
	}

	return count, nil
}
