package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/types"
	"go.uber.org/zap"
)

// Chat handles one conversational turn
func (h *Handlers) Chat(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	res, err := h.conversation.HandleTurn(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Debug("Chat turn handled",
		zap.String("session_id", res.SessionID),
		zap.Bool("composed", res.Meal != nil),
		zap.Strings("excluded", res.ExcludedIngredients),
	)
	c.JSON(http.StatusOK, res)
}

// ResetSession forgets a conversation
func (h *Handlers) ResetSession(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.conversation.ResetSession(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recommend composes a meal from the profile alone
func (h *Handlers) Recommend(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rec, err := h.conversation.Recommend(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Targets returns the profile and conversation nutrition targets
func (h *Handlers) Targets(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	t, err := h.conversation.Targets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// AcceptMeal hands an accepted meal to the meal log
func (h *Handlers) AcceptMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.AcceptMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	archived, err := h.archive.Archive(c.Request.Context(), userID, req.Meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, archived)
}
