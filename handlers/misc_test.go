package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)

	w := getJSON(r, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestIssueVisitorID(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/visitors", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)

	id, err := uuid.Parse(body["visitor_id"])
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	// every visitor gets a fresh id
	w = doJSON(r, http.MethodPost, "/api/visitors", nil)
	var second map[string]string
	decodeBody(t, w, &second)
	assert.NotEqual(t, body["visitor_id"], second["visitor_id"])
}

func TestCatalogStats(t *testing.T) {
	r := setupRouter(t)
	games := seedCatalog(t)

	for i, g := range games[:2] {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/play", g.ID),
			map[string]interface{}{"visitor_id": fmt.Sprintf("v%d", i)})
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.Equal(t, http.StatusCreated, submitRating(r, games[0].ID, "v1", 5).Code)
	require.Equal(t, http.StatusCreated, submitRating(r, games[0].ID, "v2", 3).Code)

	w := getJSON(r, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Statistics struct {
			TotalGames    int64   `json:"total_games"`
			TotalPlays    int64   `json:"total_plays"`
			TotalRatings  int64   `json:"total_ratings"`
			AverageRating float64 `json:"average_rating"`
			TopCategory   string  `json:"top_category"`
		} `json:"statistics"`
		CalculationTime string `json:"calculation_time"`
	}
	decodeBody(t, w, &body)

	assert.EqualValues(t, 4, body.Statistics.TotalGames)
	assert.EqualValues(t, 2, body.Statistics.TotalPlays)
	assert.EqualValues(t, 2, body.Statistics.TotalRatings)
	assert.InDelta(t, 4.0, body.Statistics.AverageRating, 1e-9)
	assert.Equal(t, "puzzle", body.Statistics.TopCategory)
	assert.NotEmpty(t, body.CalculationTime)
}
