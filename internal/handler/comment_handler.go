package handler

import (
	"net/http"

	"taskboard/internal/guard"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments repository.CommentRepositoryInterface
	guard    *guard.Guard
}

func NewCommentHandler(comments repository.CommentRepositoryInterface, g *guard.Guard) *CommentHandler {
	return &CommentHandler{comments: comments, guard: g}
}

type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type UpdateCommentRequest struct {
	Comment *string `json:"comment"`
}

// ListByCard godoc
// @Summary List a card's comments, newest first
// @Tags comments
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} ErrorResponse
// @Router /cards/{id}/comments [get]
func (h *CommentHandler) ListByCard(c *gin.Context) {
	cardID, ok := idParam(c, "card")
	if !ok {
		return
	}
	if _, err := h.guard.Card(c.Request.Context(), cardID); err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.comments.GetByCardID(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Get godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "comment")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create godoc
// @Summary Comment on a card as the caller
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param comment body CreateCommentRequest true "New comment"
// @Success 201 {object} model.Comment
// @Failure 404 {object} ErrorResponse
// @Router /cards/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	cardID, ok := idParam(c, "card")
	if !ok {
		return
	}
	if _, err := h.guard.Card(c.Request.Context(), cardID); err != nil {
		respondError(c, err)
		return
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment := &model.Comment{
		Comment: req.Comment,
		CardID:  cardID,
		UserID:  actorID(c),
	}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit a comment
// @Description Only the author may edit a comment.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param comment body UpdateCommentRequest true "New text"
// @Success 200 {object} model.Comment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "comment")
	if !ok {
		return
	}

	existing, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.guard.CanEditComment(existing, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Comment != nil {
		if *req.Comment == "" {
			abortDetail(c, http.StatusBadRequest, "Invalid request body: comment must not be empty")
			return
		}
		fields["comment"] = *req.Comment
	}

	comment, err := h.comments.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Description The author or the owner of the card's board may delete a comment.
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "comment")
	if !ok {
		return
	}

	existing, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.guard.CanDeleteComment(c.Request.Context(), existing, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
