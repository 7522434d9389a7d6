package entity

import (
	"github.com/google/uuid"
)

// Video is protected course content, gated by entitlement.
type Video struct {
	BaseSimple
	CourseID    uuid.UUID `db:"course_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	StorageKey  string    `db:"storage_key"`
}
