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

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a learner and returns a token", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, entity.RoleLearner, resp.Role)
		assert.Equal(t, "alice@example.com", resp.Email)
	})

	t.Run("matching admin credentials bootstrap the admin role", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "root",
			Email:    f.config.Admin.Email,
			Password: f.config.Admin.Password,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
	})

	t.Run("admin email with wrong password stays a learner", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "impostor",
			Email:    f.config.Admin.Email,
			Password: "not-the-admin-password",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleLearner, resp.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newFixture()

		req := &request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		}
		_, err := f.service.Auth.Register(ctx, req)
		require.NoError(t, err)

		_, err = f.service.Auth.Register(ctx, req)
		require.Error(t, err)
		assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	})

	t.Run("short password fails validation", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "123",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return a token", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		resp, err := f.service.Auth.Login(ctx, &request.LoginRequest{
			Email:    "alice@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		_, err = f.service.Auth.Login(ctx, &request.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Auth.Login(ctx, &request.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever1",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	})
}
