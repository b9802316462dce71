package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"snackgames/cache"
	"snackgames/db"
	"snackgames/models"
	"snackgames/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GamesListResponse is the paginated listing shape. Total is the
// post-filter, pre-pagination match count.
type GamesListResponse struct {
	Games []models.Game `json:"games"`
	Total int64         `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func pagination(c *gin.Context) (skip, limit int) {
	skip = queryInt(c, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit = queryInt(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

// GetGames lists games with optional category filter, case-insensitive
// search over title/description/tags, sorting and pagination.
func GetGames(c *gin.Context) {
	skip, limit := pagination(c)
	category := c.Query("category")
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort_by", "popular")

	cacheKey := cache.GameListKey(category, search, sortBy, skip, limit)
	if cache.IsRedisAvailable() {
		var cached GamesListResponse
		if err := cache.GetGameList(cacheKey, &cached); err == nil {
			utils.Log.Debug(fmt.Sprintf("Cache HIT: %s", cacheKey))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := db.DB.Model(&models.Game{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		// Tags are stored as a JSON text column, so a LIKE on the
		// serialized value covers substring matches inside any tag.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch games"})
		return
	}

	switch sortBy {
	case "latest":
		query = query.Order("created_at DESC")
	case "rating":
		query = query.Order("avg_rating DESC")
	default:
		query = query.Order("play_count DESC")
	}

	games := make([]models.Game, 0, limit)
	if err := query.Offset(skip).Limit(limit).Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch games"})
		return
	}

	response := GamesListResponse{Games: games, Total: total, Skip: skip, Limit: limit}
	if cache.IsRedisAvailable() {
		cache.SetGameList(cacheKey, response)
	}

	c.JSON(http.StatusOK, response)
}

// GetGameByID returns one game or the not-found shape.
func GetGameByID(c *gin.Context) {
	id := c.Param("id")

	var game models.Game
	if err := db.DB.First(&game, "id = ?", id).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	c.JSON(http.StatusOK, game)
}

// GetCategories returns category counts derived from current games.
func GetCategories(c *gin.Context) {
	type categoryEntry struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}
	type categoriesResponse struct {
		Categories []categoryEntry `json:"categories"`
	}

	if cache.IsRedisAvailable() {
		var cached categoriesResponse
		if err := cache.GetCategories(&cached); err == nil {
			utils.Log.Debug("Cache HIT: categories")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var rows []struct {
		Category string
		Count    int64
	}
	if err := db.DB.Model(&models.Game{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch categories"})
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}

	response := categoriesResponse{Categories: make([]categoryEntry, 0, len(counts))}
	for _, id := range models.GameCategories {
		if counts[id] == 0 {
			continue
		}
		response.Categories = append(response.Categories, categoryEntry{
			ID:    id,
			Name:  models.CategoryNames[id],
			Count: counts[id],
		})
	}

	if cache.IsRedisAvailable() {
		cache.SetCategories(response)
	}

	c.JSON(http.StatusOK, response)
}

// CreateGame adds a catalog entry.
func CreateGame(c *gin.Context) {
	var input models.GameCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	embedAllowed := true
	if input.EmbedAllowed != nil {
		embedAllowed = *input.EmbedAllowed
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	game := models.Game{
		Title:        input.Title,
		Description:  input.Description,
		URL:          input.URL,
		Thumbnail:    input.Thumbnail,
		Category:     input.Category,
		Tags:         models.StringSlice(tags),
		EmbedAllowed: embedAllowed,
	}

	if err := db.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create game"})
		return
	}

	invalidateGameCaches(game.ID)
	c.JSON(http.StatusCreated, game)
}

// UpdateGame applies a partial update to a catalog entry.
func UpdateGame(c *gin.Context) {
	id := c.Param("id")

	var game models.Game
	if err := db.DB.First(&game, "id = ?", id).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	var input models.GameUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if input.Title != nil {
		game.Title = *input.Title
	}
	if input.Description != nil {
		game.Description = *input.Description
	}
	if input.URL != nil {
		game.URL = *input.URL
	}
	if input.Thumbnail != nil {
		game.Thumbnail = input.Thumbnail
	}
	if input.Category != nil {
		game.Category = *input.Category
	}
	if input.Tags != nil {
		game.Tags = models.StringSlice(input.Tags)
	}
	if input.EmbedAllowed != nil {
		game.EmbedAllowed = *input.EmbedAllowed
	}

	if err := db.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update game"})
		return
	}

	invalidateGameCaches(game.ID)
	c.JSON(http.StatusOK, game)
}

// DeleteGame removes a catalog entry.
func DeleteGame(c *gin.Context) {
	id := c.Param("id")

	var game models.Game
	if err := db.DB.First(&game, "id = ?", id).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	if err := db.DB.Delete(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete game"})
		return
	}

	invalidateGameCaches(game.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}

// RecordPlay appends a play-history row and increments play_count by
// exactly 1, atomically.
func RecordPlay(c *gin.Context) {
	id := c.Param("id")

	var game models.Game
	if err := db.DB.First(&game, "id = ?", id).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	var input models.PlayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BindErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		play := models.PlayHistory{
			GameID:    game.ID,
			VisitorID: input.VisitorID,
			Duration:  input.Duration,
			PlayedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&play).Error; err != nil {
			return err
		}
		// UpdateColumn keeps updated_at untouched; a play is not a
		// content change.
		return tx.Model(&models.Game{}).Where("id = ?", game.ID).
			UpdateColumn("play_count", gorm.Expr("play_count + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to record play"})
		return
	}

	invalidateGameCaches(game.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Play recorded successfully"})
}

func invalidateGameCaches(gameID uint) {
	if !cache.IsRedisAvailable() {
		return
	}
	cache.InvalidateGames()
	cache.InvalidateGame(gameID)
	utils.Log.Debug(fmt.Sprintf("Game caches invalidated for game %d", gameID))
}
