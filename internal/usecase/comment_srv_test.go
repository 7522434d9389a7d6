package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-marketplace/internal/data/entity"
	"course-marketplace/internal/dto/request"
	"course-marketplace/pkg/apperr"
)

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a comment with the author's username", func(t *testing.T) {
		f := newFixture()
		user := f.addUser(entity.RoleLearner)
		course := f.addCourse(1000)

		resp, err := f.service.Comment.CreateComment(ctx, user.ID, course.ID.String(), &request.CreateCommentRequest{
			Content: "Great course!",
		})
		require.NoError(t, err)
		assert.Equal(t, "Great course!", resp.Content)
		assert.Equal(t, user.Username, resp.Username)
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		f := newFixture()
		user := f.addUser(entity.RoleLearner)

		_, err := f.service.Comment.CreateComment(ctx, user.ID, "3f1f9c3e-1b1f-4f3e-9c4d-2a6f8e0d1b2c", &request.CreateCommentRequest{
			Content: "Hello?",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("empty content fails validation", func(t *testing.T) {
		f := newFixture()
		user := f.addUser(entity.RoleLearner)
		course := f.addCourse(1000)

		_, err := f.service.Comment.CreateComment(ctx, user.ID, course.ID.String(), &request.CreateCommentRequest{})
		require.Error(t, err)
		assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	})
}

func TestGetCourseComments(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	user := f.addUser(entity.RoleLearner)
	course := f.addCourse(1000)

	for _, content := range []string{"first", "second"} {
		_, err := f.service.Comment.CreateComment(ctx, user.ID, course.ID.String(), &request.CreateCommentRequest{
			Content: content,
		})
		require.NoError(t, err)
	}

	comments, err := f.service.Comment.GetCourseComments(ctx, course.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}
