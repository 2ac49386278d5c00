package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"compscope/server/config"
	"compscope/server/internal/database"
	"compscope/server/internal/queue"
)

func SetupRoutes(router *gin.Engine, db *database.Database, q *queue.RecordQueue, cfg *config.Config, logger *logrus.Logger) {
	handler := NewHandler(db, q, cfg, logger)

	api := router.Group("/api")
	{
		report := api.Group("/report")
		{
			report.GET("/summary", handler.GetReportSummary)
			report.GET("/pricing", handler.GetPricingSuggestion)
			report.GET("/market", handler.GetMarketConditions)
			report.GET("/trend", handler.GetTrend)
			report.GET("/regression", handler.GetRegression)
		}

		api.GET("/comparables", handler.GetComparables)
		api.POST("/comparables/batch", handler.IngestBatch)
	}
}
