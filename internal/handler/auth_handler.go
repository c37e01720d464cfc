package handler

import (
	"errors"
	"fmt"
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *auth.Service
	metrics *metrics.Metrics
}

func NewAuthHandler(service *auth.Service, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{service: service, metrics: m}
}

// LoginRequest is sent as an OAuth2 password form, or as JSON with the same keys.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	UserName    string `json:"user_name"`
}

// Login godoc
// @Summary Exchange email and password for a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		h.metrics.RecordLogin(metrics.LoginSucceeded)
	case errors.Is(err, auth.ErrUnknownIdentity):
		h.metrics.RecordLogin(metrics.LoginUnknown)
	case errors.Is(err, auth.ErrBadCredential):
		h.metrics.RecordLogin(metrics.LoginRejected)
	default:
		h.metrics.RecordLogin(metrics.LoginFailed)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		UserID:      result.User.ID,
		UserName:    result.User.FirstName,
	})
}

// Protected godoc
// @Summary Check a bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /protected [get]
func (h *AuthHandler) Protected(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, errors.New("authenticated route reached without a user"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Hello %s, you are authenticated!", user.EmailAddress),
	})
}
