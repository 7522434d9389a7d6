package request

type CreateBookingRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
}

// VerifyPaymentRequest is the client-supplied confirmation that a gateway
// order was paid.
type VerifyPaymentRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid4"`
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
