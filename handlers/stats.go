package handlers

import (
	"net/http"
	"time"

	"snackgames/concurrent"

	"github.com/gin-gonic/gin"
)

// GetCatalogStats returns catalog-wide aggregates. The individual
// COUNT queries are independent, so they run in parallel.
func GetCatalogStats(c *gin.Context) {
	start := time.Now()

	stats := concurrent.CalculateCatalogStats()

	c.JSON(http.StatusOK, gin.H{
		"statistics":       stats,
		"calculation_time": time.Since(start).String(),
	})
}
