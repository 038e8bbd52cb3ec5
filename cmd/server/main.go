package main

import (
	"os"
	"time"

	"benign_fashion_backend/internal/config"
	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Configuration zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("GIN_MODE") != "release" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	config.Load()
	database.ConnectDatabases()

	r := gin.Default()

	// CORS pour le front (storefront + dashboard admin)
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zlog.Info().Str("port", port).Msg("🚀 Serveur Benign Fashion lancé")
	if err := r.Run(":" + port); err != nil {
		zlog.Fatal().Err(err).Msg("❌ Arrêt serveur")
	}
}
