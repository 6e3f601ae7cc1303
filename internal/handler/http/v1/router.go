package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes. When API keys are configured,
// everything except map config and health sits behind the auth middleware.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	incidents := protected.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PATCH("/:id", h.updateIncident)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	protected.GET("/search", h.searchLocation)

	api.GET("/map/config", h.mapConfig)
	api.GET("/system/health", h.healthCheck)
}
