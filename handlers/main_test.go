package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"snackgames/db"
	"snackgames/models"
	"snackgames/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupRouter gives each test a fresh in-memory store and a fully
// wired engine. Redis is absent in tests, so all cache paths fall
// through to the database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, or every pool connection would get its own
	// empty in-memory database.
	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(g))
	db.DB = g

	return routes.SetupRouter()
}

func createGame(t *testing.T, game models.Game) models.Game {
	t.Helper()
	if game.Title == "" {
		game.Title = "test game"
	}
	if game.Description == "" {
		game.Description = "test description"
	}
	if game.URL == "" {
		game.URL = "https://example.com/game"
	}
	if game.Category == "" {
		game.Category = "puzzle"
	}
	if game.Tags == nil {
		game.Tags = models.StringSlice{}
	}
	require.NoError(t, db.DB.Create(&game).Error)
	return game
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func getJSON(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
