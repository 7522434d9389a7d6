package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course-marketplace/internal/data/entity"
	"course-marketplace/pkg/utils"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, userID uuid.UUID, role string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(expiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func identityEcho(t *testing.T, gotID *uuid.UUID, gotRole *entity.UserRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
			*gotID = id
		}
		if role, ok := utils.GetRoleFromContext(r.Context()); ok {
			*gotRole = role
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	log := zap.NewNop()

	t.Run("valid token sets the identity", func(t *testing.T) {
		userID := uuid.New()
		var gotID uuid.UUID
		var gotRole entity.UserRole

		handler := Auth(testSecret, log)(identityEcho(t, &gotID, &gotRole))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, "admin", time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, entity.RoleAdmin, gotRole)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		handler := Auth(testSecret, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		handler := Auth(testSecret, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, uuid.New(), "learner", -time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role claim is unauthorized", func(t *testing.T) {
		handler := Auth(testSecret, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, uuid.New(), "superuser", time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	log := zap.NewNop()

	t.Run("no token passes through anonymously", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole entity.UserRole
		handler := OptionalAuth(testSecret, log)(identityEcho(t, &gotID, &gotRole))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uuid.Nil, gotID)
	})

	t.Run("invalid token is treated as anonymous", func(t *testing.T) {
		var gotID uuid.UUID
		var gotRole entity.UserRole
		handler := OptionalAuth(testSecret, log)(identityEcho(t, &gotID, &gotRole))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uuid.Nil, gotID)
	})

	t.Run("valid token sets the identity", func(t *testing.T) {
		userID := uuid.New()
		var gotID uuid.UUID
		var gotRole entity.UserRole
		handler := OptionalAuth(testSecret, log)(identityEcho(t, &gotID, &gotRole))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, "learner", time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
	})
}

func TestAdmin(t *testing.T) {
	log := zap.NewNop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		handler := Admin(log)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := utils.SetUserContext(req.Context(), uuid.New(), entity.RoleAdmin)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("learner is forbidden", func(t *testing.T) {
		handler := Admin(log)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := utils.SetUserContext(req.Context(), uuid.New(), entity.RoleLearner)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		handler := Admin(log)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
