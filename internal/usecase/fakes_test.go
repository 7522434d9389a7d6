package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/data/repository"
	"course-marketplace/pkg/events"
	"course-marketplace/pkg/utils"
)

// In-memory fakes implementing the repository interfaces, preserving the same
// conditional-update and set semantics as the SQL implementations.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uuid.UUID]*entity.Course)}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Course
	for _, course := range r.courses {
		copied := *course
		all = append(all, &copied)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.courses)), nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return errors.New("course not found")
	}
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*entity.Video)}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *video
	r.videos[video.ID] = &copied
	return nil
}

func (r *fakeVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[id]
	if !ok {
		return nil, nil
	}
	copied := *video
	return &copied, nil
}

func (r *fakeVideoRepo) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*entity.Video
	for _, video := range r.videos {
		if video.CourseID == courseID {
			copied := *video
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (r *fakeVideoRepo) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	videos, _ := r.FindByCourseID(ctx, courseID)
	return int64(len(videos)), nil
}

type likeKey struct {
	subject uuid.UUID
	user    uuid.UUID
}

type fakeLikeRepo struct {
	mu          sync.Mutex
	courseLikes map[likeKey]bool
	videoLikes  map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{
		courseLikes: make(map[likeKey]bool),
		videoLikes:  make(map[likeKey]bool),
	}
}

func (r *fakeLikeRepo) AddCourseLike(ctx context.Context, courseID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courseLikes[likeKey{courseID, userID}] = true
	return nil
}

func (r *fakeLikeRepo) RemoveCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey{courseID, userID}
	existed := r.courseLikes[key]
	delete(r.courseLikes, key)
	return existed, nil
}

func (r *fakeLikeRepo) HasCourseLike(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.courseLikes[likeKey{courseID, userID}], nil
}

func (r *fakeLikeRepo) CountCourseLikes(ctx context.Context, courseID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.courseLikes {
		if key.subject == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) AddVideoLike(ctx context.Context, videoID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videoLikes[likeKey{videoID, userID}] = true
	return nil
}

func (r *fakeLikeRepo) RemoveVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey{videoID, userID}
	existed := r.videoLikes[key]
	delete(r.videoLikes, key)
	return existed, nil
}

func (r *fakeLikeRepo) HasVideoLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videoLikes[likeKey{videoID, userID}], nil
}

func (r *fakeLikeRepo) CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.videoLikes {
		if key.subject == videoID {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*entity.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{users: users}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *comment
	r.comments = append(r.comments, &copied)
	return nil
}

func (r *fakeCommentRepo) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*repository.CommentWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*repository.CommentWithAuthor
	for _, comment := range r.comments {
		if comment.CourseID != courseID {
			continue
		}
		username := ""
		if user, _ := r.users.FindByID(ctx, comment.UserID); user != nil {
			username = user.Username
		}
		found = append(found, &repository.CommentWithAuthor{
			Comment:  *comment,
			Username: username,
		})
	}
	return found, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	courses  *fakeCourseRepo
}

func newFakeBookingRepo(courses *fakeCourseRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		courses:  courses,
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*repository.BookingWithCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*repository.BookingWithCourse
	for _, booking := range r.bookings {
		if booking.UserID != userID {
			continue
		}
		item := &repository.BookingWithCourse{Booking: *booking}
		if course, _ := r.courses.FindByID(ctx, booking.CourseID); course != nil {
			item.CourseTitle = course.Title
			item.CourseDescription = course.Description
		}
		found = append(found, item)
	}
	if offset >= len(found) {
		return nil, nil
	}
	end := offset + limit
	if end > len(found) {
		end = len(found)
	}
	return found[offset:end], nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.GatewayOrderID != nil {
		return errors.New("booking not found or gateway order already set")
	}
	booking.GatewayOrderID = &orderID
	return nil
}

func (r *fakeBookingRepo) CompleteIfPending(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != entity.BookingStatusPending {
		return false, nil
	}
	booking.Status = entity.BookingStatusCompleted
	booking.GatewayPaymentID = &paymentID
	return true, nil
}

func (r *fakeBookingRepo) FailIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != entity.BookingStatusPending {
		return false, nil
	}
	booking.Status = entity.BookingStatusFailed
	return true, nil
}

func (r *fakeBookingRepo) ExistsCompleted(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.UserID == userID && booking.CourseID == courseID && booking.Status == entity.BookingStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeEnrollmentRepo struct {
	mu       sync.Mutex
	enrolled map[likeKey]bool
	addCalls int
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrolled: make(map[likeKey]bool)}
}

func (r *fakeEnrollmentRepo) Add(ctx context.Context, courseID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCalls++
	r.enrolled[likeKey{courseID, userID}] = true
	return nil
}

func (r *fakeEnrollmentRepo) Exists(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enrolled[likeKey{courseID, userID}], nil
}

func (r *fakeEnrollmentRepo) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.enrolled {
		if key.subject == courseID {
			count++
		}
	}
	return count, nil
}

// fakeGateway returns a fixed order id, or fails when err is set.
type fakeGateway struct {
	mu         sync.Mutex
	orderID    string
	err        error
	calls      int
	lastAmount int64
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastAmount = amount
	if g.err != nil {
		return "", g.err
	}
	return g.orderID, nil
}

// fakePublisher records every published event.
type fakePublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
}

func (p *fakePublisher) Publish(ctx context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}

// fakeMedia stores keys and presigns deterministic URLs.
type fakeMedia struct {
	mu   sync.Mutex
	keys []string
}

func (m *fakeMedia) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	return nil
}

func (m *fakeMedia) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://media.test/" + key, nil
}

// fixture wires the fakes into the service aggregate under a test config.
type fixture struct {
	repo       *repository.Repository
	users      *fakeUserRepo
	courses    *fakeCourseRepo
	videos     *fakeVideoRepo
	likes      *fakeLikeRepo
	bookings   *fakeBookingRepo
	enrollment *fakeEnrollmentRepo
	gateway    *fakeGateway
	publisher  *fakePublisher
	media      *fakeMedia
	config     *utils.Config
	service    *Service
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	courses := newFakeCourseRepo()

	f := &fixture{
		users:      users,
		courses:    courses,
		videos:     newFakeVideoRepo(),
		likes:      newFakeLikeRepo(),
		bookings:   newFakeBookingRepo(courses),
		enrollment: newFakeEnrollmentRepo(),
		gateway:    &fakeGateway{orderID: "order_abc"},
		publisher:  &fakePublisher{},
		media:      &fakeMedia{},
		config: &utils.Config{
			JWT: utils.JWTConfig{
				Secret:      "test-secret",
				ExpiryHours: 24,
			},
			Admin: utils.AdminConfig{
				Email:    "admin@example.com",
				Password: "admin-password",
			},
			Razorpay: utils.RazorpayConfig{
				KeyID:     "rzp_test_key",
				KeySecret: "rzp_test_secret",
				Currency:  "INR",
			},
		},
	}

	f.repo = &repository.Repository{
		User:       f.users,
		Course:     f.courses,
		Video:      f.videos,
		Like:       f.likes,
		Comment:    newFakeCommentRepo(users),
		Booking:    f.bookings,
		Enrollment: f.enrollment,
	}

	f.service = NewService(f.repo, f.config, f.gateway, f.publisher, f.media, zap.NewNop())
	return f
}

func (f *fixture) addCourse(price int64) *entity.Course {
	now := time.Now()
	course := &entity.Course{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       "Distributed Systems in Practice",
		Description: "From single node to planet scale.",
		Price:       price,
	}
	_ = f.courses.Create(context.Background(), course)
	return course
}

func (f *fixture) addUser(role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     "tester",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	_ = f.users.Create(context.Background(), user)
	return user
}

var _ events.Publisher = (*fakePublisher)(nil)
