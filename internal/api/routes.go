package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/estimates", handler.CreateEstimate)
		api.GET("/estimates/:id", handler.GetEstimate)
		api.POST("/refinance", handler.RefinanceScenario)
		api.GET("/options", handler.GetOptions)
		api.GET("/coverage", handler.GetCoverage)
		api.POST("/cache/clear", handler.ClearCache)
	}
}
