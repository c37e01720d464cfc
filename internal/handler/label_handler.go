package handler

import (
	"net/http"

	"taskboard/internal/guard"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	labels repository.LabelRepositoryInterface
	guard  *guard.Guard
}

func NewLabelHandler(labels repository.LabelRepositoryInterface, g *guard.Guard) *LabelHandler {
	return &LabelHandler{labels: labels, guard: g}
}

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// ListByBoard godoc
// @Summary List a board's labels
// @Tags labels
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {array} model.BoardLabel
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id}/labels [get]
func (h *LabelHandler) ListByBoard(c *gin.Context) {
	boardID, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.Board(c.Request.Context(), boardID); err != nil {
		respondError(c, err)
		return
	}

	labels, err := h.labels.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

// Get godoc
// @Summary Get a label
// @Tags labels
// @Produce json
// @Param id path int true "Label ID"
// @Success 200 {object} model.BoardLabel
// @Failure 404 {object} ErrorResponse
// @Router /labels/{id} [get]
func (h *LabelHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "label")
	if !ok {
		return
	}

	label, err := h.labels.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

// Create godoc
// @Summary Add a label to a board
// @Tags labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Param label body CreateLabelRequest true "New label"
// @Success 201 {object} model.BoardLabel
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id}/labels [post]
func (h *LabelHandler) Create(c *gin.Context) {
	boardID, ok := idParam(c, "board")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedBoard(c.Request.Context(), boardID, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req CreateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label := &model.BoardLabel{
		Name:    req.Name,
		Color:   req.Color,
		BoardID: boardID,
	}
	if err := h.labels.Create(c.Request.Context(), label); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

// Update godoc
// @Summary Update a label
// @Tags labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Label ID"
// @Param label body UpdateLabelRequest true "Fields to change"
// @Success 200 {object} model.BoardLabel
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /labels/{id} [put]
func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "label")
	if !ok {
		return
	}
	if !h.authorize(c, id) {
		return
	}

	var req UpdateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			abortDetail(c, http.StatusBadRequest, "Invalid request body: name must not be empty")
			return
		}
		fields["name"] = *req.Name
	}
	if req.Color != nil {
		if *req.Color == "" {
			abortDetail(c, http.StatusBadRequest, "Invalid request body: color must not be empty")
			return
		}
		fields["color"] = *req.Color
	}

	label, err := h.labels.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

// Delete godoc
// @Summary Delete a label
// @Tags labels
// @Security BearerAuth
// @Param id path int true "Label ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /labels/{id} [delete]
func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "label")
	if !ok {
		return
	}
	if !h.authorize(c, id) {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LabelHandler) authorize(c *gin.Context, id uint) bool {
	label, err := h.labels.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return false
	}
	if err := h.guard.CanManageLabel(c.Request.Context(), label, actorID(c)); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
