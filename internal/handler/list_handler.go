package handler

import (
	"net/http"

	"taskboard/internal/guard"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	lists repository.ListRepositoryInterface
	guard *guard.Guard
}

func NewListHandler(lists repository.ListRepositoryInterface, g *guard.Guard) *ListHandler {
	return &ListHandler{lists: lists, guard: g}
}

type CreateListRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

type UpdateListRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

// ListByBoard godoc
// @Summary List a board's lists by position
// @Tags lists
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {array} model.List
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id}/lists [get]
func (h *ListHandler) ListByBoard(c *gin.Context) {
	boardID, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.Board(c.Request.Context(), boardID); err != nil {
		respondError(c, err)
		return
	}

	lists, err := h.lists.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Get godoc
// @Summary Get a list
// @Tags lists
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} model.List
// @Failure 404 {object} ErrorResponse
// @Router /lists/{id} [get]
func (h *ListHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "list")
	if !ok {
		return
	}

	list, err := h.lists.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Add a list to a board
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Param list body CreateListRequest true "New list"
// @Success 201 {object} model.List
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id}/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	boardID, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedBoard(c.Request.Context(), boardID, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list := &model.List{
		Title:    req.Title,
		Position: req.Position,
		BoardID:  boardID,
	}
	if err := h.lists.Create(c.Request.Context(), list); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// Update godoc
// @Summary Rename or reorder a list
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param list body UpdateListRequest true "Fields to change"
// @Success 200 {object} model.List
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lists/{id} [put]
func (h *ListHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "list")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedList(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req UpdateListRequest
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
	if req.Position != nil {
		fields["position"] = *req.Position
	}

	list, err := h.lists.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary Delete a list with its cards
// @Tags lists
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "list")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedList(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.lists.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
