package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func storedUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: 5, EmailAddress: "test@example.com", Password: hash, FirstName: "Test"}
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	router, mockRepo := setupTest()
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser(t), nil)

	// Act
	resp := postForm(router, "/login/", url.Values{"username": {"Test@Example.com"}, "password": {"password123"}})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var body handler.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, uint(5), body.UserID)
	assert.Equal(t, "Test", body.UserName)
}

func TestLogin_JSONBody(t *testing.T) {
	router, mockRepo := setupTest()
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser(t), nil)

	resp := doJSON(router, "POST", "/login/", map[string]string{"username": "test@example.com", "password": "password123"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "access_token")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "unknown email",
			email:      "nobody@example.com",
			password:   "password123",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Email not registered. Please register first",
		},
		{
			name:       "wrong password",
			email:      "test@example.com",
			password:   "wrong",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Incorrect password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, mockRepo := setupTest()
			mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(storedUser(t), nil)
			mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
				Return(nil, &repository.NotFoundError{Kind: repository.KindUser})

			// Act
			resp := postForm(router, "/login/", url.Values{"username": {tt.email}, "password": {tt.password}})

			// Assert
			assert.Equal(t, tt.wantStatus, resp.Code)
			var body handler.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.NotContains(t, resp.Body.String(), "access_token")
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router, mockRepo := setupTest()

	resp := postForm(router, "/login/", url.Values{"username": {"test@example.com"}})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}
