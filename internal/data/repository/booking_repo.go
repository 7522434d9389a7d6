package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/pkg/database"
)

// BookingWithCourse is the read model for the user's booking history.
type BookingWithCourse struct {
	entity.Booking
	CourseTitle       string `db:"course_title"`
	CourseDescription string `db:"course_description"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithCourse, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// SetGatewayOrder records the gateway order id on a provisional booking.
	// It is written exactly once, while the booking is still pending.
	SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error

	// CompleteIfPending transitions pending -> completed and stores the
	// gateway payment id. Returns false when the booking was not pending:
	// the status check lives in the UPDATE itself so concurrent
	// confirmations cannot both win.
	CompleteIfPending(ctx context.Context, id uuid.UUID, paymentID string) (bool, error)

	// FailIfPending transitions pending -> failed under the same guard.
	FailIfPending(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsCompleted answers the entitlement query: does at least one
	// completed booking link this user and course.
	ExistsCompleted(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, course_id, gateway_order_id, gateway_payment_id, status, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.CourseID,
		booking.GatewayOrderID,
		booking.GatewayPaymentID,
		booking.Status,
		booking.Amount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, course_id, gateway_order_id, gateway_payment_id, status, amount, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CourseID,
		&booking.GatewayOrderID,
		&booking.GatewayPaymentID,
		&booking.Status,
		&booking.Amount,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithCourse, error) {
	query := `
		SELECT b.id, b.user_id, b.course_id, b.gateway_order_id, b.gateway_payment_id, b.status, b.amount, b.created_at, b.updated_at,
		       c.title, c.description
		FROM bookings b
		JOIN courses c ON c.id = b.course_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*BookingWithCourse
	for rows.Next() {
		var booking BookingWithCourse
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.CourseID,
			&booking.GatewayOrderID,
			&booking.GatewayPaymentID,
			&booking.Status,
			&booking.Amount,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.CourseTitle,
			&booking.CourseDescription,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	query := `
		UPDATE bookings
		SET gateway_order_id = $2, updated_at = NOW()
		WHERE id = $1 AND gateway_order_id IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, orderID)
	if err != nil {
		r.log.Error("Failed to set gateway order",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("gateway_order_id", orderID),
		)
		return fmt.Errorf("set gateway order on booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found or gateway order already set", id.String())
	}

	return nil
}

func (r *bookingRepository) CompleteIfPending(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', gateway_payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to complete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("complete booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) FailIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'failed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to fail booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("fail booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) ExistsCompleted(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND course_id = $2 AND status = 'completed'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		r.log.Error("Failed to check completed booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
		return false, fmt.Errorf("check completed booking: %w", err)
	}

	return exists, nil
}
