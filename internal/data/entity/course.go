package entity

import (
	"github.com/google/uuid"
)

// Course is a purchasable catalog item. Price is held in the smallest
// currency unit and snapshotted onto bookings at checkout time.
type Course struct {
	Base
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	Price        int64      `db:"price"`
	ImageKey     *string    `db:"image_key"`
	InstructorID *uuid.UUID `db:"instructor_id"`
}
