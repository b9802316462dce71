package main

import (
	"log"
	"os"

	"snackgames/cache"
	"snackgames/db"
	"snackgames/monitoring"
	"snackgames/routes"
	"snackgames/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db.InitDB()

	// The cache is optional: handlers fall through to the database
	// when redis is unreachable.
	if err := cache.InitRedis(); err != nil {
		utils.Log.Warnf("Redis unavailable, running without cache: %v", err)
	} else {
		utils.Log.Info("Redis connected")
		defer cache.CloseRedis()
	}

	monitoring.Register()
	monitoring.StartCatalogGaugeUpdater()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.Log.Infof("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
