package handler

import (
	"net/http"
	"strconv"

	"taskboard/internal/guard"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards  repository.BoardRepositoryInterface
	guard   *guard.Guard
	metrics *metrics.Metrics
}

func NewBoardHandler(boards repository.BoardRepositoryInterface, g *guard.Guard, m *metrics.Metrics) *BoardHandler {
	return &BoardHandler{boards: boards, guard: g, metrics: m}
}

type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// List godoc
// @Summary List boards
// @Tags boards
// @Produce json
// @Param user_id query int false "Only boards owned by this user"
// @Success 200 {array} model.Board
// @Router /boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	var ownerID *uint
	if raw, ok := c.GetQuery("user_id"); ok {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			abortDetail(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		owner := uint(id)
		ownerID = &owner
	}

	boards, err := h.boards.List(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// Get godoc
// @Summary Get a board
// @Tags boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} model.Board
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id} [get]
func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "board")
	if !ok {
		return
	}

	board, err := h.boards.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Create godoc
// @Summary Create a board owned by the caller
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param board body CreateBoardRequest true "New board"
// @Success 201 {object} model.Board
// @Failure 401 {object} ErrorResponse
// @Router /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board := &model.Board{
		Title:       req.Title,
		Description: req.Description,
		OwnerUserID: actorID(c),
	}
	if err := h.boards.Create(c.Request.Context(), board); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.IncrementCreated(repository.KindBoard)
	c.JSON(http.StatusCreated, board)
}

// Update godoc
// @Summary Update a board
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Param board body UpdateBoardRequest true "Fields to change"
// @Success 200 {object} model.Board
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedBoard(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			abortDetail(c, http.StatusBadRequest, "Invalid request body: title must not be empty")
			return
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	board, err := h.boards.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Delete godoc
// @Summary Delete a board with its lists, cards, comments and labels
// @Tags boards
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedBoard(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.boards.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
