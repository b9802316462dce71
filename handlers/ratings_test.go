package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"snackgames/db"
	"snackgames/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitRating(r *gin.Engine, gameID uint, visitorID string, score int) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/rating", gameID),
		map[string]interface{}{"score": score, "visitor_id": visitorID})
}

func TestRatingAggregation(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{})

	// two distinct visitors: 5 and 3 -> avg 4.0, count 2
	w := submitRating(r, game.ID, "visitor-a", 5)
	require.Equal(t, http.StatusCreated, w.Code)

	w = submitRating(r, game.ID, "visitor-b", 3)
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.Game
	require.NoError(t, db.DB.First(&updated, game.ID).Error)
	assert.InDelta(t, 4.0, updated.AvgRating, 1e-9)
	assert.EqualValues(t, 2, updated.RatingCount)

	// overwrite from visitor-b: 1 -> avg 3.0, count stays 2
	w = submitRating(r, game.ID, "visitor-b", 1)
	require.Equal(t, http.StatusOK, w.Code, "second submission from the same visitor overwrites")

	require.NoError(t, db.DB.First(&updated, game.ID).Error)
	assert.InDelta(t, 3.0, updated.AvgRating, 1e-9)
	assert.EqualValues(t, 2, updated.RatingCount)

	var ratings []models.Rating
	require.NoError(t, db.DB.Where("game_id = ?", game.ID).Find(&ratings).Error)
	assert.Len(t, ratings, 2, "no duplicate row for the overwriting visitor")
}

func TestRatingAverageRoundsToOneDecimal(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{})

	// 5, 4, 4 -> mean 4.333... -> 4.3
	require.Equal(t, http.StatusCreated, submitRating(r, game.ID, "v1", 5).Code)
	require.Equal(t, http.StatusCreated, submitRating(r, game.ID, "v2", 4).Code)
	require.Equal(t, http.StatusCreated, submitRating(r, game.ID, "v3", 4).Code)

	var updated models.Game
	require.NoError(t, db.DB.First(&updated, game.ID).Error)
	assert.InDelta(t, 4.3, updated.AvgRating, 1e-9)
	assert.EqualValues(t, 3, updated.RatingCount)
}

func TestGetRatingSummary(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{})
	submitRating(r, game.ID, "visitor-a", 5)
	submitRating(r, game.ID, "visitor-b", 3)

	// anonymous summary: no user rating
	w := getJSON(r, fmt.Sprintf("/api/games/%d/rating", game.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.RatingSummary
	decodeBody(t, w, &summary)
	assert.Equal(t, game.ID, summary.GameID)
	assert.InDelta(t, 4.0, summary.AvgRating, 1e-9)
	assert.EqualValues(t, 2, summary.RatingCount)
	assert.Nil(t, summary.UserRating)

	// with visitor_id: own score included
	w = getJSON(r, fmt.Sprintf("/api/games/%d/rating?visitor_id=visitor-b", game.ID))
	decodeBody(t, w, &summary)
	require.NotNil(t, summary.UserRating)
	assert.Equal(t, 3, *summary.UserRating)

	// unknown visitor: null
	w = getJSON(r, fmt.Sprintf("/api/games/%d/rating?visitor_id=stranger", game.ID))
	decodeBody(t, w, &summary)
	assert.Nil(t, summary.UserRating)
}

func TestSubmitRatingValidation(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{})

	for _, score := range []int{0, 6, -1} {
		w := submitRating(r, game.ID, "visitor-a", score)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "score=%d", score)
	}

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/rating", game.ID),
		map[string]interface{}{"score": 4})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "visitor_id is required")

	// non-integer score fails at decode time
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/rating", game.ID),
		map[string]interface{}{"score": 4.5, "visitor_id": "visitor-a"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitRatingUnknownGame(t *testing.T) {
	r := setupRouter(t)

	w := submitRating(r, 424242, "visitor-a", 5)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Game not found", body["detail"])
}
