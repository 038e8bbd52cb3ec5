package config

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warn().Msg("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Info().Msg("✅ Fichier .env chargé avec succès")
	}
}
