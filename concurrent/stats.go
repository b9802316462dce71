package concurrent

import (
	"sync"

	"snackgames/db"
	"snackgames/models"
)

// CatalogStats is the aggregate view served by GET /api/stats.
type CatalogStats struct {
	TotalGames    int64   `json:"total_games"`
	TotalComments int64   `json:"total_comments"`
	TotalRatings  int64   `json:"total_ratings"`
	TotalPlays    int64   `json:"total_plays"`
	AverageRating float64 `json:"average_rating"`
	TopCategory   string  `json:"top_category"`
}

// CalculateCatalogStats runs the independent aggregate queries in
// parallel and collects them into one snapshot.
func CalculateCatalogStats() CatalogStats {
	var stats CatalogStats
	var mu sync.Mutex
	var wg sync.WaitGroup

	count := func(model interface{}, dest *int64) {
		defer wg.Done()
		var n int64
		db.DB.Model(model).Count(&n)
		mu.Lock()
		*dest = n
		mu.Unlock()
	}

	wg.Add(6)
	go count(&models.Game{}, &stats.TotalGames)
	go count(&models.Comment{}, &stats.TotalComments)
	go count(&models.Rating{}, &stats.TotalRatings)
	go count(&models.PlayHistory{}, &stats.TotalPlays)

	go func() {
		defer wg.Done()
		var avg struct{ Avg float64 }
		db.DB.Model(&models.Rating{}).Select("AVG(score) as avg").Scan(&avg)
		mu.Lock()
		stats.AverageRating = avg.Avg
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		var top struct {
			Category string
			Count    int64
		}
		db.DB.Model(&models.Game{}).
			Select("category, COUNT(*) as count").
			Group("category").
			Order("count DESC").
			Limit(1).
			Scan(&top)
		mu.Lock()
		stats.TopCategory = top.Category
		mu.Unlock()
	}()

	wg.Wait()
	return stats
}
