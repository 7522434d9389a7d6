package response

import (
	"time"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/data/repository"
)

// CheckoutResponse is what the client needs to complete payment out-of-band.
type CheckoutResponse struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	BookingID string `json:"bookingId"`
}

type BookingResponse struct {
	ID                string               `json:"id"`
	UserID            string               `json:"user_id"`
	CourseID          string               `json:"course_id"`
	CourseTitle       string               `json:"course_title,omitempty"`
	CourseDescription string               `json:"course_description,omitempty"`
	GatewayOrderID    *string              `json:"gateway_order_id,omitempty"`
	GatewayPaymentID  *string              `json:"gateway_payment_id,omitempty"`
	Status            entity.BookingStatus `json:"status"`
	Amount            int64                `json:"amount"`
	CreatedAt         time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *repository.BookingWithCourse) BookingResponse {
	return BookingResponse{
		ID:                booking.ID.String(),
		UserID:            booking.UserID.String(),
		CourseID:          booking.CourseID.String(),
		CourseTitle:       booking.CourseTitle,
		CourseDescription: booking.CourseDescription,
		GatewayOrderID:    booking.GatewayOrderID,
		GatewayPaymentID:  booking.GatewayPaymentID,
		Status:            booking.Status,
		Amount:            booking.Amount,
		CreatedAt:         booking.CreatedAt,
	}
}
