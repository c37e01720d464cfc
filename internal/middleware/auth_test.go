package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func setupRouter(resolver middleware.IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(resolver, zap.NewNop()))
	protected.GET("/resource", func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "user not found in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"email":   user.EmailAddress,
			"user_id": c.MustGet(middleware.UserIDKey),
		})
	})

	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, "good-token").
		Return(&model.User{ID: 7, EmailAddress: "ann@example.com"}, nil)
	router := setupRouter(resolver)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"email":"ann@example.com","user_id":7}`, resp.Body.String())
	resolver.AssertExpectations(t)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{name: "no header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "missing token", header: "Bearer "},
		{name: "expired token", header: "Bearer old", err: auth.ErrUnauthenticated},
		{name: "deleted user", header: "Bearer orphan", err: auth.ErrUnknownIdentity},
		{name: "store failure", header: "Bearer any", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			resolver := new(MockResolver)
			if tt.err != nil {
				resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			router := setupRouter(resolver)

			req, _ := http.NewRequest("GET", "/protected/resource", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			// Act
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			// Assert
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, resp.Body.String())
			if tt.err == nil {
				resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestJWTAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, "tok").Return(&model.User{ID: 1}, nil)
	router := setupRouter(resolver)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "bearer tok")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}
