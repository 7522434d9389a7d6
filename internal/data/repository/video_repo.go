package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/pkg/database"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Video, error)
	CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error)
}

type videoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVideoRepository(db database.PgxIface, log *zap.Logger) VideoRepository {
	return &videoRepository{
		db:  db,
		log: log.With(zap.String("repository", "video")),
	}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	query := `
		INSERT INTO course_videos (id, course_id, title, description, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.CourseID,
		video.Title,
		video.Description,
		video.StorageKey,
		video.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create video",
			zap.Error(err),
			zap.String("course_id", video.CourseID.String()),
			zap.String("title", video.Title),
		)
		return fmt.Errorf("create video %s: %w", video.Title, err)
	}

	return nil
}

func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	query := `
		SELECT id, course_id, title, description, storage_key, created_at
		FROM course_videos
		WHERE id = $1
	`

	var video entity.Video
	err := r.db.QueryRow(ctx, query, id).Scan(
		&video.ID,
		&video.CourseID,
		&video.Title,
		&video.Description,
		&video.StorageKey,
		&video.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find video by ID",
			zap.Error(err),
			zap.String("video_id", id.String()),
		)
		return nil, fmt.Errorf("find video by ID %s: %w", id.String(), err)
	}

	return &video, nil
}

func (r *videoRepository) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Video, error) {
	query := `
		SELECT id, course_id, title, description, storage_key, created_at
		FROM course_videos
		WHERE course_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		r.log.Error("Failed to find videos by course ID",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find videos by course ID %s: %w", courseID.String(), err)
	}
	defer rows.Close()

	var videos []*entity.Video
	for rows.Next() {
		var video entity.Video
		err := rows.Scan(
			&video.ID,
			&video.CourseID,
			&video.Title,
			&video.Description,
			&video.StorageKey,
			&video.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan video row", zap.Error(err))
			return nil, fmt.Errorf("scan video row: %w", err)
		}
		videos = append(videos, &video)
	}

	return videos, nil
}

func (r *videoRepository) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM course_videos WHERE course_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, courseID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count videos by course ID",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("count videos by course ID %s: %w", courseID.String(), err)
	}

	return count, nil
}
