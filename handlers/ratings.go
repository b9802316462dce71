package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"snackgames/cache"
	"snackgames/db"
	"snackgames/models"
	"snackgames/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetRatingSummary returns a game's aggregate rating plus the calling
// visitor's own score when visitor_id is supplied.
func GetRatingSummary(c *gin.Context) {
	gameID := c.Param("id")
	visitorID := c.Query("visitor_id")

	// The anonymous aggregate is cacheable; a summary with a
	// per-visitor score is not.
	if visitorID == "" && cache.IsRedisAvailable() {
		var cached models.RatingSummary
		if err := cache.GetRatingSummary(parseUint(gameID), &cached); err == nil {
			utils.Log.Debug(fmt.Sprintf("Cache HIT: rating summary for game %s", gameID))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var game models.Game
	if err := db.DB.First(&game, "id = ?", gameID).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	summary := models.RatingSummary{
		GameID:      game.ID,
		AvgRating:   game.AvgRating,
		RatingCount: game.RatingCount,
	}

	if visitorID != "" {
		var rating models.Rating
		err := db.DB.Where("game_id = ? AND visitor_id = ?", game.ID, visitorID).
			First(&rating).Error
		if err == nil {
			summary.UserRating = &rating.Score
		}
	} else if cache.IsRedisAvailable() {
		cache.SetRatingSummary(game.ID, summary)
	}

	c.JSON(http.StatusOK, summary)
}

// SubmitRating creates or overwrites the visitor's rating for a game
// and recomputes the game's aggregate in the same transaction. First
// creation answers 201, an overwrite answers 200.
func SubmitRating(c *gin.Context) {
	gameID := c.Param("id")

	var input models.RatingCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	var game models.Game
	if err := db.DB.First(&game, "id = ?", gameID).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	var rating models.Rating
	created := false

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("game_id = ? AND visitor_id = ?", game.ID, input.VisitorID).
			First(&rating).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			rating = models.Rating{
				GameID:    game.ID,
				VisitorID: input.VisitorID,
				Score:     input.Score,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			rating.Score = input.Score
			rating.CreatedAt = time.Now().UTC()
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Rating{}).
			Select("AVG(score) as avg, COUNT(*) as count").
			Where("game_id = ?", game.ID).
			Scan(&agg).Error; err != nil {
			return err
		}

		// Mean rounded to one decimal place; rating_count always moves
		// with it so the Game row never disagrees with the Rating rows.
		return tx.Model(&models.Game{}).Where("id = ?", game.ID).
			UpdateColumns(map[string]interface{}{
				"avg_rating":   math.Round(agg.Avg*10) / 10,
				"rating_count": agg.Count,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to submit rating"})
		return
	}

	if cache.IsRedisAvailable() {
		cache.InvalidateRatingSummary(game.ID)
		cache.InvalidateGames()
		utils.Log.Debug(fmt.Sprintf("Rating caches invalidated for game %d", game.ID))
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, rating)
}

func parseUint(s string) uint {
	var n uint
	fmt.Sscanf(s, "%d", &n)
	return n
}
