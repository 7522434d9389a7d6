// Package events carries the fire-and-forget fan-out channel for viewer-facing
// updates. The core only depends on the Publisher interface, never on a
// concrete transport.
package events

import (
	"context"
)

// Routing keys on the topic exchange.
const (
	KeyVideoLikeChanged  = "course.video.like.changed"
	KeyCourseLikeChanged = "course.like.changed"
)

// VideoLikeEvent is emitted after a video like toggle has been committed.
type VideoLikeEvent struct {
	CourseID   string `json:"courseId"`
	VideoID    string `json:"videoId"`
	LikesCount int64  `json:"likesCount"`
	UserLiked  bool   `json:"userLiked"`
}

// CourseLikeEvent is emitted after a course like toggle has been committed.
type CourseLikeEvent struct {
	CourseID   string `json:"courseId"`
	LikesCount int64  `json:"likesCount"`
	UserLiked  bool   `json:"userLiked"`
}

// Publisher publishes an event under a routing key. Delivery is best-effort:
// callers commit their mutation first and only log a publish failure.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, key string, event any) error {
	return nil
}
