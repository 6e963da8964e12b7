package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/models"
	"github.com/pageza/fuelplate/backend/internal/types"
)

func (h *Handlers) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	row := models.AthleteProfile{
		Goal:          req.Goal,
		Season:        req.Season,
		Sport:         req.Sport,
		ActivityLevel: req.ActivityLevel,
		Diet:          req.Diet,
		WeightKg:      req.WeightKg,
	}
	if err := h.profiles.UpsertProfile(c.Request.Context(), userID, row, req.Allergens); err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handlers) GetInventory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.inventory.GetInventory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handlers) ReplaceInventory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.ReplaceInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items := req.ToEngine()
	if err := h.inventory.ReplaceInventory(c.Request.Context(), userID, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
