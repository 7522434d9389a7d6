package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/data/repository"
	"course-marketplace/internal/dto/request"
	"course-marketplace/internal/dto/response"
	"course-marketplace/pkg/apperr"
	"course-marketplace/pkg/gateway"
	"course-marketplace/pkg/utils"
)

type BookingService interface {
	// CreateCheckout opens a provisional booking for the course and creates
	// the matching gateway order the client pays against.
	CreateCheckout(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.CheckoutResponse, error)

	// VerifyPayment settles a pending booking from the client-supplied
	// payment confirmation. On a valid signature the booking completes and
	// the user is enrolled; on an invalid one it fails permanently.
	VerifyPayment(ctx context.Context, userID uuid.UUID, req *request.VerifyPaymentRequest) (*response.BookingResponse, error)

	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo    *repository.Repository
	gateway gateway.OrderCreator
	config  *utils.Config
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, gw gateway.OrderCreator, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		gateway: gw,
		config:  config,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateCheckout(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("CreateCheckout validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequest, "invalid course ID format %s", req.CourseID)
	}

	course, err := s.repo.Course.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, apperr.Newf(apperr.NotFound, "course %s not found", req.CourseID)
	}

	enrolled, err := s.repo.Booking.ExistsCompleted(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if enrolled {
		return nil, apperr.New(apperr.Conflict, "course already purchased")
	}

	// The booking row goes in first, with the amount snapshotted from the
	// course price. A later price edit never changes what this checkout
	// charges.
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userID,
		CourseID: courseID,
		Status:   entity.BookingStatusPending,
		Amount:   course.Price,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	receipt := "course_booking_" + courseID.String()
	orderID, err := s.gateway.CreateOrder(ctx, booking.Amount, s.config.Razorpay.Currency, receipt)
	if err != nil {
		// The provisional booking is dead weight without a gateway order.
		// Mark it failed so it can never be confirmed.
		if _, failErr := s.repo.Booking.FailIfPending(ctx, booking.ID); failErr != nil {
			s.log.Error("Failed to mark booking failed after gateway error",
				zap.Error(failErr),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		s.log.Error("Gateway order creation failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("amount", booking.Amount),
		)
		return nil, apperr.Wrap(apperr.UpstreamFailure, "payment gateway unavailable", err)
	}

	if err := s.repo.Booking.SetGatewayOrder(ctx, booking.ID, orderID); err != nil {
		return nil, fmt.Errorf("set gateway order: %w", err)
	}

	s.log.Info("Checkout created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("course_id", courseID.String()),
		zap.String("gateway_order_id", orderID),
		zap.Int64("amount", booking.Amount),
	)

	return &response.CheckoutResponse{
		OrderID:   orderID,
		Amount:    booking.Amount,
		BookingID: booking.ID.String(),
	}, nil
}

func (s *bookingService) VerifyPayment(ctx context.Context, userID uuid.UUID, req *request.VerifyPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("VerifyPayment validation failed", zap.Any("errors", errs))
		return nil, apperr.Newf(apperr.BadRequest, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.Newf(apperr.BadRequest, "invalid booking ID format %s", req.BookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.NotFound, "booking %s not found", req.BookingID)
	}
	if booking.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "booking belongs to another user")
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, apperr.Newf(apperr.Conflict, "booking already %s", booking.Status)
	}

	// The supplied order id must be the one stored at checkout; a signature
	// over some other order proves nothing about this booking.
	if booking.GatewayOrderID == nil || *booking.GatewayOrderID != req.OrderID {
		return s.failBooking(ctx, booking, "order id does not match booking")
	}

	if !gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, s.config.Razorpay.KeySecret) {
		return s.failBooking(ctx, booking, "payment signature verification failed")
	}

	won, err := s.repo.Booking.CompleteIfPending(ctx, bookingID, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}
	if !won {
		// A concurrent confirmation reached a terminal state first.
		return nil, apperr.New(apperr.Conflict, "booking already settled")
	}

	if err := s.repo.Enrollment.Add(ctx, booking.CourseID, userID); err != nil {
		s.log.Error("Failed to enroll user after completed payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
			zap.String("course_id", booking.CourseID.String()),
		)
		return nil, fmt.Errorf("enroll user: %w", err)
	}

	s.log.Info("Payment verified",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
		zap.String("course_id", booking.CourseID.String()),
		zap.String("gateway_payment_id", req.PaymentID),
	)

	booking.Status = entity.BookingStatusCompleted
	booking.GatewayPaymentID = &req.PaymentID
	resp := response.BookingToResponse(&repository.BookingWithCourse{Booking: *booking})
	return &resp, nil
}

// failBooking pushes a pending booking to failed and reports the rejection. A
// lost race against a concurrent settle surfaces as a conflict instead.
func (s *bookingService) failBooking(ctx context.Context, booking *entity.Booking, reason string) (*response.BookingResponse, error) {
	failed, err := s.repo.Booking.FailIfPending(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("fail booking: %w", err)
	}
	if !failed {
		return nil, apperr.New(apperr.Conflict, "booking already settled")
	}

	s.log.Warn("Payment verification rejected",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", booking.UserID.String()),
		zap.String("reason", reason),
	)

	return nil, apperr.New(apperr.VerificationFailed, reason)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}
