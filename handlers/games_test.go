package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"snackgames/db"
	"snackgames/handlers"
	"snackgames/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) []models.Game {
	games := []models.Game{
		{Title: "Suika Merge", Description: "merge fruit into a watermelon", Category: "puzzle",
			Tags: models.StringSlice{"fruit", "merge"}, PlayCount: 1500, AvgRating: 4.5,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Block Match", Description: "match three blocks", Category: "puzzle",
			Tags: models.StringSlice{"blocks"}, PlayCount: 900, AvgRating: 4.2,
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Title: "Typing Class", Description: "practice typing", Category: "education",
			Tags: models.StringSlice{"typing", "Retro"}, PlayCount: 2300, AvgRating: 4.7,
			CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Title: "Ideal Cup", Description: "tournament of favorites", Category: "entertainment",
			Tags: models.StringSlice{"tournament"}, PlayCount: 3100, AvgRating: 4.3,
			CreatedAt: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
	}
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		out = append(out, createGame(t, g))
	}
	return out
}

func TestGetGamesDefaultSortsByPopularity(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	w := getJSON(r, "/api/games")
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.GamesListResponse
	decodeBody(t, w, &resp)

	require.Len(t, resp.Games, 4)
	assert.EqualValues(t, 4, resp.Total)
	assert.Equal(t, "Ideal Cup", resp.Games[0].Title)
	assert.Equal(t, "Typing Class", resp.Games[1].Title)
	assert.Equal(t, "Suika Merge", resp.Games[2].Title)
	assert.Equal(t, "Block Match", resp.Games[3].Title)
}

func TestGetGamesSortLatestAndRating(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	w := getJSON(r, "/api/games?sort_by=latest")
	var latest handlers.GamesListResponse
	decodeBody(t, w, &latest)
	require.Len(t, latest.Games, 4)
	assert.Equal(t, "Ideal Cup", latest.Games[0].Title)
	assert.Equal(t, "Suika Merge", latest.Games[3].Title)

	w = getJSON(r, "/api/games?sort_by=rating")
	var rated handlers.GamesListResponse
	decodeBody(t, w, &rated)
	require.Len(t, rated.Games, 4)
	assert.Equal(t, "Typing Class", rated.Games[0].Title)
	assert.Equal(t, "Suika Merge", rated.Games[1].Title)
}

func TestGetGamesCategoryFilter(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	w := getJSON(r, "/api/games?category=puzzle")
	var resp handlers.GamesListResponse
	decodeBody(t, w, &resp)

	assert.EqualValues(t, 2, resp.Total)
	for _, g := range resp.Games {
		assert.Equal(t, "puzzle", g.Category)
	}
}

func TestGetGamesSearchMatchesTitleDescriptionAndTags(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	// title, case-insensitive
	var resp handlers.GamesListResponse
	decodeBody(t, getJSON(r, "/api/games?search=suika"), &resp)
	require.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "Suika Merge", resp.Games[0].Title)

	// description
	decodeBody(t, getJSON(r, "/api/games?search=watermelon"), &resp)
	require.EqualValues(t, 1, resp.Total)

	// tag, case-insensitive substring
	decodeBody(t, getJSON(r, "/api/games?search=retro"), &resp)
	require.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "Typing Class", resp.Games[0].Title)

	// combined with category: both predicates must hold
	decodeBody(t, getJSON(r, "/api/games?category=puzzle&search=blocks"), &resp)
	require.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "Block Match", resp.Games[0].Title)

	decodeBody(t, getJSON(r, "/api/games?category=education&search=watermelon"), &resp)
	assert.EqualValues(t, 0, resp.Total)
	assert.Empty(t, resp.Games)
}

func TestGetGamesPagination(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	cases := []struct {
		skip, limit, wantLen int
	}{
		{0, 2, 2},
		{2, 2, 2},
		{3, 2, 1},
		{4, 2, 0},
		{10, 5, 0},
	}
	for _, tc := range cases {
		w := getJSON(r, fmt.Sprintf("/api/games?skip=%d&limit=%d", tc.skip, tc.limit))
		var resp handlers.GamesListResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Games, tc.wantLen, "skip=%d limit=%d", tc.skip, tc.limit)
		assert.EqualValues(t, 4, resp.Total, "total is the filtered count, not the page length")
		assert.Equal(t, tc.skip, resp.Skip)
		assert.Equal(t, tc.limit, resp.Limit)
	}
}

func TestGetGameByID(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{Title: "Lonely Game"})

	w := getJSON(r, fmt.Sprintf("/api/games/%d", game.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Game
	decodeBody(t, w, &got)
	assert.Equal(t, game.ID, got.ID)
	assert.Equal(t, "Lonely Game", got.Title)

	w = getJSON(r, "/api/games/9999")
	require.Equal(t, http.StatusNotFound, w.Code)
	var errBody map[string]string
	decodeBody(t, w, &errBody)
	assert.Equal(t, "Game not found", errBody["detail"])
}

func TestGetCategories(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)

	w := getJSON(r, "/api/games/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"categories"`
	}
	decodeBody(t, w, &resp)

	require.Len(t, resp.Categories, 3)
	counts := map[string]int64{}
	for _, c := range resp.Categories {
		counts[c.ID] = c.Count
		assert.NotEmpty(t, c.Name)
	}
	assert.EqualValues(t, 2, counts["puzzle"])
	assert.EqualValues(t, 1, counts["education"])
	assert.EqualValues(t, 1, counts["entertainment"])
}

func TestRecordPlay(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{PlayCount: 7})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/play", game.ID),
		map[string]interface{}{"visitor_id": "visitor-abc", "duration": 42})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Game
	require.NoError(t, db.DB.First(&updated, game.ID).Error)
	assert.EqualValues(t, 8, updated.PlayCount)

	var plays []models.PlayHistory
	require.NoError(t, db.DB.Where("game_id = ?", game.ID).Find(&plays).Error)
	require.Len(t, plays, 1)
	assert.Equal(t, "visitor-abc", plays[0].VisitorID)
	require.NotNil(t, plays[0].Duration)
	assert.Equal(t, 42, *plays[0].Duration)
}

func TestRecordPlayUnknownGame(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/games/424242/play",
		map[string]interface{}{"visitor_id": "visitor-abc"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordPlayRequiresVisitorID(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/play", game.ID),
		map[string]interface{}{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Msg  string   `json:"msg"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Detail, 1)
	assert.Equal(t, []string{"body", "visitor_id"}, body.Detail[0].Loc)
}

func TestCreateGame(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/games", map[string]interface{}{
		"title":       "New Game",
		"description": "fresh out of the oven",
		"url":         "https://example.com/new",
		"category":    "casual",
		"tags":        []string{"new"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Game
	decodeBody(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.True(t, created.EmbedAllowed, "embed_allowed defaults to true")
	assert.EqualValues(t, 0, created.PlayCount)
}

func TestCreateGameValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/games", map[string]interface{}{
		"title":    "",
		"url":      "not a url",
		"category": "arcade",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	decodeBody(t, w, &body)

	fields := map[string]bool{}
	for _, d := range body.Detail {
		require.Len(t, d.Loc, 2)
		fields[d.Loc[1]] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["description"])
	assert.True(t, fields["url"])
	assert.True(t, fields["category"])
}

func TestUpdateAndDeleteGame(t *testing.T) {
	r := setupRouter(t)
	game := createGame(t, models.Game{Title: "Before"})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/games/%d", game.ID),
		map[string]interface{}{"title": "After"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Game
	decodeBody(t, w, &updated)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, game.URL, updated.URL, "unset fields keep their value")

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/games/%d", game.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(r, fmt.Sprintf("/api/games/%d", game.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
