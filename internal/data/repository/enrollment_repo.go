package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/pkg/database"
)

type EnrollmentRepository interface {
	// Add inserts set membership. Adding an already-enrolled user is a no-op,
	// so the commit is safe under duplicate confirmations.
	Add(ctx context.Context, courseID, userID uuid.UUID) error
	Exists(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error)
}

type enrollmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEnrollmentRepository(db database.PgxIface, log *zap.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "enrollment")),
	}
}

func (r *enrollmentRepository) Add(ctx context.Context, courseID, userID uuid.UUID) error {
	query := `
		INSERT INTO enrollments (course_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (course_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, courseID, userID)
	if err != nil {
		r.log.Error("Failed to add enrollment",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("add enrollment: %w", err)
	}

	return nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check enrollment",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return exists, nil
}

func (r *enrollmentRepository) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		r.log.Error("Failed to count enrollments",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("count enrollments: %w", err)
	}

	return count, nil
}
