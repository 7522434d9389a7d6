package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseSimple
	CourseID uuid.UUID `db:"course_id"`
	UserID   uuid.UUID `db:"user_id"`
	Content  string    `db:"content"`
}
