package handler

import (
	"net/http"
	"time"

	"taskboard/internal/guard"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cards   repository.CardRepositoryInterface
	guard   *guard.Guard
	metrics *metrics.Metrics
}

func NewCardHandler(cards repository.CardRepositoryInterface, g *guard.Guard, m *metrics.Metrics) *CardHandler {
	return &CardHandler{cards: cards, guard: g, metrics: m}
}

type CreateCardRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Position    *int       `json:"position"`
	DueDate     *time.Time `json:"due_date"`
}

// ListByList godoc
// @Summary List the cards of a list
// @Tags cards
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {array} model.Card
// @Failure 404 {object} ErrorResponse
// @Router /lists/{id}/cards [get]
func (h *CardHandler) ListByList(c *gin.Context) {
	listID, ok := idParam(c, "list")
	if !ok {
		return
	}
	if _, err := h.guard.List(c.Request.Context(), listID); err != nil {
		respondError(c, err)
		return
	}

	cards, err := h.cards.GetByListID(c.Request.Context(), listID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Get godoc
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} model.Card
// @Failure 404 {object} ErrorResponse
// @Router /cards/{id} [get]
func (h *CardHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "card")
	if !ok {
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Create godoc
// @Summary Add a card to a list
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param card body CreateCardRequest true "New card"
// @Success 201 {object} model.Card
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /lists/{id}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	listID, ok := idParam(c, "list")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedList(c.Request.Context(), listID, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card := &model.Card{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		DueDate:     req.DueDate,
		ListID:      listID,
	}
	if err := h.cards.Create(c.Request.Context(), card); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.IncrementCreated(repository.KindCard)
	c.JSON(http.StatusCreated, card)
}

// Update godoc
// @Summary Update a card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param card body UpdateCardRequest true "Fields to change"
// @Success 200 {object} model.Card
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "card")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedCard(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	var req UpdateCardRequest
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
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}

	card, err := h.cards.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Delete godoc
// @Summary Delete a card with its comments
// @Tags cards
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "card")
	if !ok {
		return
	}
	if _, err := h.guard.OwnedCard(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.cards.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
