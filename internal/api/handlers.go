package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/fuelplate/backend/internal/middleware"
	"github.com/pageza/fuelplate/backend/internal/service"
	"go.uber.org/zap"
)

// Services bundles what the handlers call.
type Services struct {
	Conversation service.IConversationService
	Catalog      service.ICatalogService
	Archive      service.IMealArchive
	Profiles     service.IProfileService
	Inventory    service.IInventoryService
	Tokens       middleware.TokenValidator
}

// Handlers serves the /api/v1 surface.
type Handlers struct {
	conversation service.IConversationService
	catalog      service.ICatalogService
	archive      service.IMealArchive
	profiles     service.IProfileService
	inventory    service.IInventoryService
	tokens       middleware.TokenValidator
	chatLimiter  *middleware.RateLimiter
	logger       *zap.Logger
}

// NewHandlers creates the handlers. chatLimiter may be nil, which disables
// chat rate limiting.
func NewHandlers(svc Services, chatLimiter *middleware.RateLimiter, logger *zap.Logger) *Handlers {
	return &Handlers{
		conversation: svc.Conversation,
		catalog:      svc.Catalog,
		archive:      svc.Archive,
		profiles:     svc.Profiles,
		inventory:    svc.Inventory,
		tokens:       svc.Tokens,
		chatLimiter:  chatLimiter,
		logger:       logger.Named("api"),
	}
}

// RegisterRoutes registers all authenticated routes on router.
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(h.tokens))

	chat := protected.Group("/chat")
	{
		if h.chatLimiter != nil {
			chat.POST("", h.chatLimiter.RateLimitMiddleware(), h.Chat)
		} else {
			chat.POST("", h.Chat)
		}
		chat.DELETE("/sessions/:id", h.ResetSession)
	}

	protected.GET("/recommendations", h.Recommend)
	protected.GET("/targets", h.Targets)
	protected.POST("/meals/accept", h.AcceptMeal)

	catalog := protected.Group("/catalog")
	{
		catalog.GET("", h.BrowseCatalog)
		catalog.GET("/:id", h.SelectCatalogMeal)
	}

	profile := protected.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.GetInventory)
		inventory.PUT("", h.ReplaceInventory)
	}
}
