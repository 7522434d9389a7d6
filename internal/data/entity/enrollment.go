package entity

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is set membership: a user appears at most once per course.
type Enrollment struct {
	CourseID  uuid.UUID `db:"course_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
