package handlers

import (
	"fmt"
	"net/http"

	"snackgames/cache"
	"snackgames/db"
	"snackgames/models"
	"snackgames/utils"

	"github.com/gin-gonic/gin"
)

// CommentsListResponse is the paginated comments shape, newest first.
type CommentsListResponse struct {
	Comments []models.Comment `json:"comments"`
	Total    int64            `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// GetComments lists a game's comments newest-first with pagination.
func GetComments(c *gin.Context) {
	gameID := c.Param("id")
	skip, limit := pagination(c)

	var game models.Game
	if err := db.DB.First(&game, "id = ?", gameID).Error; err != nil {
		utils.NotFoundResponse(c, "Game not found")
		return
	}

	// Only the first default page is worth caching; it is what the
	// detail view requests.
	firstPage := skip == 0 && limit == defaultPageLimit
	if firstPage && cache.IsRedisAvailable() {
		var cached CommentsListResponse
		if err := cache.GetComments(game.ID, &cached); err == nil {
			utils.Log.Debug(fmt.Sprintf("Cache HIT: comments for game %d", game.ID))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := db.DB.Model(&models.Comment{}).Where("game_id = ?", game.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch comments"})
		return
	}

	comments := make([]models.Comment, 0, limit)
	if err := query.Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch comments"})
		return
	}

	response := CommentsListResponse{Comments: comments, Total: total, Skip: skip, Limit: limit}
	if firstPage && cache.IsRedisAvailable() {
		cache.SetComments(game.ID, response)
	}

	c.JSON(http.StatusOK, response)
}

// CreateComment validates and inserts a visitor comment.
func CreateComment(c *gin.Context) {
	gameID := c.Param("id")

	var input models.CommentCreateInput
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

	comment := models.Comment{
		GameID:   game.ID,
		Nickname: input.Nickname,
		Content:  input.Content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create comment"})
		return
	}

	if cache.IsRedisAvailable() {
		cache.InvalidateComments(game.ID)
		utils.Log.Debug(fmt.Sprintf("Comments cache invalidated for game %d", game.ID))
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment by id. There is no ownership check:
// visitors are pseudo-anonymous and comments carry no principal to
// check against.
func DeleteComment(c *gin.Context) {
	id := c.Param("id")

	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", id).Error; err != nil {
		utils.NotFoundResponse(c, "Comment not found")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete comment"})
		return
	}

	if cache.IsRedisAvailable() {
		cache.InvalidateComments(comment.GameID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
