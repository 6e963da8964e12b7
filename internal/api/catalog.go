package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/engine"
)

// BrowseCatalog lists catalog meals that fit the user's inventory
func (h *Handlers) BrowseCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	meals, err := h.catalog.Browse(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(meals) == 0 {
		meals = []engine.CandidateMeal{}
		c.JSON(http.StatusOK, gin.H{"meals": meals, "message": "no meals found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// SelectCatalogMeal classifies one catalog meal. Rejections are a 200 with
// accepted=false.
func (h *Handlers) SelectCatalogMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sel, err := h.catalog.SelectMeal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}
