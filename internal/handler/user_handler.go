package handler

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	repo       repository.UserRepositoryInterface
	bcryptCost int
	metrics    *metrics.Metrics
}

func NewUserHandler(repo repository.UserRepositoryInterface, bcryptCost int, m *metrics.Metrics) *UserHandler {
	return &UserHandler{repo: repo, bcryptCost: bcryptCost, metrics: m}
}

// CreateUserRequest accepts the address as either email_address or email.
type CreateUserRequest struct {
	EmailAddress string `json:"email_address"`
	Email        string `json:"email"`
	Password     string `json:"password" binding:"required"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

type UpdateUserRequest struct {
	EmailAddress *string `json:"email_address"`
	Password     *string `json:"password"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "New user"
// @Success 201 {object} model.User
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	email := req.EmailAddress
	if email == "" {
		email = req.Email
	}
	email = auth.NormalizeEmail(email)
	if email == "" {
		abortDetail(c, http.StatusBadRequest, "Invalid request body: email_address is required")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &model.User{
		EmailAddress: email,
		Password:     hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.IncrementCreated(repository.KindUser)
	c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Description Only supplied fields change. A new password is hashed before it is stored.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.EmailAddress != nil {
		email := auth.NormalizeEmail(*req.EmailAddress)
		if email == "" {
			abortDetail(c, http.StatusBadRequest, "Invalid request body: email_address must not be empty")
			return
		}
		fields["email_address"] = email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, h.bcryptCost)
		if err != nil {
			respondError(c, err)
			return
		}
		fields["password"] = hash
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}

	user, err := h.repo.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Rejected with 409 while the user still owns boards. The user's comments are removed.
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "user")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
