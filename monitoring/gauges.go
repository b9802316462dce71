package monitoring

import (
	"time"

	"snackgames/db"
	"snackgames/models"
)

// StartCatalogGaugeUpdater refreshes the catalog gauges every minute.
func StartCatalogGaugeUpdater() {
	go func() {
		for {
			UpdateCatalogGauges()
			time.Sleep(time.Minute)
		}
	}()
}

// UpdateCatalogGauges reads the current row counts into the gauges.
func UpdateCatalogGauges() {
	var n int64

	if err := db.DB.Model(&models.Game{}).Count(&n).Error; err == nil {
		TotalGames.Set(float64(n))
	}
	if err := db.DB.Model(&models.Comment{}).Count(&n).Error; err == nil {
		TotalComments.Set(float64(n))
	}
	if err := db.DB.Model(&models.Rating{}).Count(&n).Error; err == nil {
		TotalRatings.Set(float64(n))
	}
	if err := db.DB.Model(&models.PlayHistory{}).Count(&n).Error; err == nil {
		TotalPlays.Set(float64(n))
	}
}
