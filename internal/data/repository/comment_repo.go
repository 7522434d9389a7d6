package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/pkg/database"
)

// CommentWithAuthor is the read model for comment listings.
type CommentWithAuthor struct {
	entity.Comment
	Username string `db:"username"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*CommentWithAuthor, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, course_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.CourseID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("course_id", comment.CourseID.String()),
			zap.String("user_id", comment.UserID.String()),
		)
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.course_id, c.user_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.course_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		r.log.Error("Failed to find comments by course ID",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find comments by course ID %s: %w", courseID.String(), err)
	}
	defer rows.Close()

	var comments []*CommentWithAuthor
	for rows.Next() {
		var comment CommentWithAuthor
		err := rows.Scan(
			&comment.ID,
			&comment.CourseID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.Username,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}
