package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/sources", handler.Sources)

		search := api.Group("/search")
		{
			search.GET("", handler.Search)
			search.POST("", handler.Search)
			search.GET("/stream", handler.SearchStream)
		}
	}
}
