package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusFailed    BookingStatus = "failed"
)

// Booking records one checkout attempt and its outcome. Status moves from
// pending to exactly one terminal state and never leaves it. Amount is the
// price snapshot captured at creation, in the smallest currency unit; it is
// never recomputed from the live course price.
type Booking struct {
	Base
	UserID           uuid.UUID     `db:"user_id"`
	CourseID         uuid.UUID     `db:"course_id"`
	GatewayOrderID   *string       `db:"gateway_order_id"`
	GatewayPaymentID *string       `db:"gateway_payment_id"`
	Status           BookingStatus `db:"status"`
	Amount           int64         `db:"amount"`
}
