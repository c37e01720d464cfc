package handler

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/auth"
	"taskboard/internal/guard"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}

// respondError maps a service or repository error to its HTTP status.
func respondError(c *gin.Context, err error) {
	var notFound *repository.NotFoundError
	var forbidden *guard.ForbiddenError

	switch {
	case errors.As(err, &notFound):
		abortDetail(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &forbidden):
		abortDetail(c, http.StatusForbidden, forbidden.Error())
	case errors.Is(err, repository.ErrEmailTaken):
		abortDetail(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, repository.ErrUserOwnsBoards):
		abortDetail(c, http.StatusConflict, "User still owns boards")
	case errors.Is(err, auth.ErrUnknownIdentity):
		abortDetail(c, http.StatusUnauthorized, "Email not registered. Please register first")
	case errors.Is(err, auth.ErrBadCredential):
		abortDetail(c, http.StatusUnauthorized, "Incorrect password")
	default:
		_ = c.Error(err)
		abortDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// idParam parses the :id path parameter. It writes a 400 and returns false
// when the value is not a positive integer.
func idParam(c *gin.Context, kind string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		abortDetail(c, http.StatusBadRequest, "Invalid "+kind+" id")
		return 0, false
	}
	return uint(id), true
}

// actorID returns the id of the authenticated user. Routes calling it sit
// behind JWTAuthMiddleware.
func actorID(c *gin.Context) uint {
	return c.GetUint(middleware.UserIDKey)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
